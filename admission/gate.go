// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package admission

import (
	"fmt"
	"runtime"

	"go.uber.org/atomic"
	"go.uber.org/governor/api/middleware"
	"go.uber.org/governor/api/service"
)

// Layer is an in-flight limit that can be applied to any number of services.
// Every Gate it produces draws from the same capacity.
//
// The Gates also share a single wake-up slot: when several of them are
// suspended, a release wakes only the one that registered last. Callers
// driving Gates independently must poll again without a wake-up, as
// package drive does.
type Layer[Req, Res any] struct {
	shared *shared
}

var _ middleware.Layer[any, any] = (*Layer[any, any])(nil)

// NewLayer builds an in-flight limit admitting at most max concurrent
// requests. A limit of zero is legal and never admits anything. It panics if
// max is negative.
func NewLayer[Req, Res any](max int, opts ...Option) *Layer[Req, Res] {
	if max < 0 {
		panic(fmt.Sprintf("admission: in-flight limit must not be negative, got %d", max))
	}
	options := defaultOptions
	for _, opt := range opts {
		opt.apply(&options)
	}
	return &Layer[Req, Res]{shared: newShared(max, options)}
}

// Apply implements middleware.Layer.
func (l *Layer[Req, Res]) Apply(inner service.Service[Req, Res]) service.Service[Req, Res] {
	return l.Gate(inner)
}

// Gate returns a Gate around inner drawing from the Layer's capacity.
func (l *Layer[Req, Res]) Gate(inner service.Service[Req, Res]) *Gate[Req, Res] {
	return newGate(inner, l.shared)
}

// InFlight returns the number of requests currently admitted.
func (l *Layer[Req, Res]) InFlight() int {
	return int(l.shared.curr.Load())
}

// Gate is a service bounding the requests in flight through it and every
// Gate sharing its capacity.
//
// A Gate is driven by a single caller at a time. The Futures it returns may
// be polled from any goroutine.
type Gate[Req, Res any] struct {
	inner  service.Service[Req, Res]
	shared *shared

	// reserved is true while a unit of capacity obtained by PollReady has not
	// been consumed by Call.
	reserved bool
}

var _ service.Service[any, any] = (*Gate[any, any])(nil)

// New returns a Gate admitting at most max concurrent requests to inner. It
// is a shorthand for NewLayer(max, opts...).Gate(inner).
func New[Req, Res any](inner service.Service[Req, Res], max int, opts ...Option) *Gate[Req, Res] {
	return NewLayer[Req, Res](max, opts...).Gate(inner)
}

func newGate[Req, Res any](inner service.Service[Req, Res], s *shared) *Gate[Req, Res] {
	g := &Gate[Req, Res]{inner: inner, shared: s}
	// A Gate that goes away while holding a reservation gives it back.
	runtime.SetFinalizer(g, (*Gate[Req, Res]).releaseReservation)
	return g
}

// Clone returns a Gate sharing this Gate's capacity without its
// reservation. If the inner service has a Clone method returning a
// service.Service, the clone wraps a clone of the inner service; otherwise
// the inner service is shared.
func (g *Gate[Req, Res]) Clone() *Gate[Req, Res] {
	inner := g.inner
	if c, ok := inner.(interface {
		Clone() service.Service[Req, Res]
	}); ok {
		inner = c.Clone()
	}
	return newGate(inner, g.shared)
}

// InFlight returns the number of requests currently admitted through the
// shared capacity.
func (g *Gate[Req, Res]) InFlight() int {
	return int(g.shared.curr.Load())
}

// Reserved reports whether the Gate holds a reservation for its next Call.
func (g *Gate[Req, Res]) Reserved() bool {
	return g.reserved
}

// PollReady reserves capacity for the next Call and then asks the inner
// service whether it is ready. Without capacity, w is registered to be
// woken by the next release and the Gate reports that it is suspended.
//
// Repeated calls without an intervening Call reuse the reservation.
func (g *Gate[Req, Res]) PollReady(w service.Waker) (bool, error) {
	if g.reserved {
		return g.inner.PollReady(w)
	}

	g.shared.waiter.Register(w)
	if !g.shared.reserve() {
		return false, nil
	}
	g.reserved = true

	return g.inner.PollReady(w)
}

// Call forwards req to the inner service, consuming the reservation made by
// PollReady. Callers that did not poll for readiness get a reservation on
// the spot if capacity allows; otherwise the returned Future fails with
// ErrNoCapacity and the inner service is not called.
func (g *Gate[Req, Res]) Call(req Req) service.Future[Res] {
	if g.reserved {
		g.reserved = false
	} else if !g.shared.reserve() {
		g.shared.reject()
		return service.Failed[Res](ErrNoCapacity)
	}

	f := &future[Res]{
		inner:  g.inner.Call(req),
		shared: g.shared,
	}
	runtime.SetFinalizer(f, (*future[Res]).release)
	return f
}

func (g *Gate[Req, Res]) releaseReservation() {
	if g.reserved {
		g.reserved = false
		g.shared.release()
	}
}

// future holds a unit of capacity until the inner Future resolves or is
// abandoned.
type future[Res any] struct {
	inner    service.Future[Res]
	shared   *shared
	released atomic.Bool
}

func (f *future[Res]) Poll(w service.Waker) (Res, bool, error) {
	res, done, err := f.inner.Poll(w)
	if !done {
		var zero Res
		return zero, false, nil
	}
	f.finish()
	return res, true, err
}

func (f *future[Res]) Abandon() {
	f.inner.Abandon()
	f.finish()
}

func (f *future[Res]) finish() {
	runtime.SetFinalizer(f, nil)
	f.release()
}

// release returns the capacity unit. Only the first call has an effect.
func (f *future[Res]) release() {
	if f.released.CompareAndSwap(false, true) {
		f.shared.release()
	}
}

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

package service

// Waker is notified when a suspended poll may be able to make progress.
//
// Wake may be called from any goroutine, any number of times, including
// after the poll that registered it has completed.
type Waker interface {
	Wake()
}

// Service is a unit of work exposing the two-phase contract.
type Service[Req, Res any] interface {
	// PollReady reports whether the service can accept a request.
	//
	//  ready, nil   the next Call may proceed
	//  false, nil   suspended; w will be woken when it is worth polling again
	//  _, err       the service failed and will not become ready
	//
	// PollReady must be called again after a wake-up; readiness is not
	// delivered through the Waker itself.
	PollReady(w Waker) (ready bool, err error)

	// Call submits a request. It always returns immediately, possibly with a
	// Future that is already resolved to a failure.
	Call(req Req) Future[Res]
}

// Future is a handle to an in-flight request.
type Future[Res any] interface {
	// Poll reports the outcome of the request if it is available.
	//
	//  res, true, nil   resolved successfully
	//  _, true, err     resolved with an error
	//  _, false, nil    suspended; w will be woken
	//
	// A Future must not be polled again after it resolved.
	Poll(w Waker) (res Res, done bool, err error)

	// Abandon discards the Future without waiting for its outcome. Resources
	// held on behalf of the request are released. Abandon is idempotent and
	// is a no-op on a resolved Future.
	Abandon()
}

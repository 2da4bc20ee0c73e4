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

// WakerFunc adapts a function into a Waker.
type WakerFunc func()

// Wake calls f.
func (f WakerFunc) Wake() { f() }

// NopWaker is a Waker that does nothing. It is useful to poll something that
// is known not to suspend.
var NopWaker Waker = WakerFunc(func() {})

// Func adapts a function into a Service that is always ready.
type Func[Req, Res any] func(Req) Future[Res]

// PollReady for Func is always ready.
func (f Func[Req, Res]) PollReady(Waker) (bool, error) { return true, nil }

// Call for Func.
func (f Func[Req, Res]) Call(req Req) Future[Res] { return f(req) }

// SyncFunc adapts a synchronous function into a Service that is always ready
// and resolves every Future immediately.
func SyncFunc[Req, Res any](f func(Req) (Res, error)) Service[Req, Res] {
	return Func[Req, Res](func(req Req) Future[Res] {
		res, err := f(req)
		if err != nil {
			return Failed[Res](err)
		}
		return Ready(res)
	})
}

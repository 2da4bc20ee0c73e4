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

// Package service defines the two-phase contract shared by every governance
// decorator in this module.
//
// A Service is first asked whether it can accept work with PollReady and is
// then handed a request with Call. Call never blocks: it returns a Future
// that the caller polls until it resolves to a response or an error.
//
// Neither method blocks. When a Service or Future cannot make progress it
// reports that it is suspended and keeps the Waker it was given; it calls
// Wake once progress may be possible, after which the caller polls again.
//
// A given Service instance is driven by one caller at a time. Decorators
// that share state across instances (clones, futures) coordinate through
// atomics, never through locks held across polls.
//
// The drive package adapts this contract to blocking calls with a
// context.Context.
package service

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

// Package governor is a toolkit for governing access to request/response
// services.
//
// Services that are shared between many callers need to protect themselves:
// from too many concurrent requests, from bursts that exceed an agreed rate,
// and from requests that never finish. Governor breaks that protection into
// small decorators that all speak the same two-phase contract, defined in
// package api/service. A caller first polls a service for readiness, which
// may reserve whatever the request will need, and then calls it, receiving a
// future for the response. Nothing blocks: a service that cannot make
// progress registers the caller's waker and returns.
//
// Package admission bounds the number of in-flight requests. Package
// ratelimit admits a fixed quota of requests per window, and package
// throttle smooths traffic with a token bucket. Package deadline fails
// requests that outlive a timeout. Package rebind swaps the inner service
// whenever a watched value changes, which together with package watch lets
// a running service pick up new configuration.
//
// Decorators compose as layers (package api/middleware). Package
// governorconfig builds a stack of layers from YAML, package governorfx
// provides them to fx applications, and package drive runs a service from
// ordinary blocking code.
package governor

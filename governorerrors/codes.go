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

package governorerrors

import (
	"fmt"
	"strconv"
	"strings"
)

// Code classifies a failure surfaced by a governance decorator. The values
// match the codes used by YARPC and gRPC so that callers can map them onto
// their transport without a lookup table.
type Code int

const (
	// CodeOK means no error.
	CodeOK Code = 0

	// CodeCancelled means the caller gave up on the request, typically by
	// cancelling its context while waiting.
	CodeCancelled Code = 1

	// CodeUnknown is used for errors that did not originate in a decorator
	// and carry no code of their own.
	CodeUnknown Code = 2

	// CodeInvalidArgument means a decorator was configured with values it
	// cannot work with.
	CodeInvalidArgument Code = 3

	// CodeDeadlineExceeded means the request did not complete before its
	// deadline.
	CodeDeadlineExceeded Code = 4

	// CodeResourceExhausted means the request was shed because a capacity or
	// quota was exhausted. It is safe to retry later.
	CodeResourceExhausted Code = 8

	// CodeUnavailable means the governed service will not accept requests.
	CodeUnavailable Code = 14
)

var (
	_codeToString = map[Code]string{
		CodeOK:                "ok",
		CodeCancelled:         "cancelled",
		CodeUnknown:           "unknown",
		CodeInvalidArgument:   "invalid-argument",
		CodeDeadlineExceeded:  "deadline-exceeded",
		CodeResourceExhausted: "resource-exhausted",
		CodeUnavailable:       "unavailable",
	}
	_stringToCode = map[string]Code{
		"ok":                 CodeOK,
		"cancelled":          CodeCancelled,
		"unknown":            CodeUnknown,
		"invalid-argument":   CodeInvalidArgument,
		"deadline-exceeded":  CodeDeadlineExceeded,
		"resource-exhausted": CodeResourceExhausted,
		"unavailable":        CodeUnavailable,
	}
)

// String returns the the string representation of the Code.
func (c Code) String() string {
	if s, ok := _codeToString[c]; ok {
		return s
	}
	return strconv.Itoa(int(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	s, ok := _codeToString[c]
	if ok {
		return []byte(s), nil
	}
	return nil, fmt.Errorf("unknown code: %d", int(c))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Code) UnmarshalText(text []byte) error {
	i, ok := _stringToCode[strings.ToLower(string(text))]
	if !ok {
		return fmt.Errorf("unknown code string: %s", string(text))
	}
	*c = i
	return nil
}

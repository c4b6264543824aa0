/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package coreerr is the shared error model of the commerce services.
//
// Domain and application code fail with a *Error carrying an error type
// from package errortype and, optionally, a custom message:
//
//	if qty <= 0 {
//	    return coreerr.E(errortype.BadRequest, "quantity must be positive")
//	}
//	return coreerr.New(errortype.NotFound)
//
// Transport packages (httpx, grpcx) turn any error into a response through
// a status mapper, so handlers only ever return errors.
package coreerr

import (
	"fmt"
	"sort"

	"dirpx.dev/coreerr/apis"
	"dirpx.dev/coreerr/errortype"
	"dirpx.dev/coreerr/reason"
)

// Error is the core exception type.
//
// All WithX helpers return a shallow copy, so values (including the
// package sentinels) can be shared between goroutines and refined freely.
type Error struct {
	// Type is the classification. Required.
	Type errortype.Type

	// Reason refines Type, e.g. "coupon.use.already_used". May be empty.
	Reason reason.Reason

	// CustomMessage overrides the type's default message when non-empty.
	CustomMessage string

	// Details is a shallow map of extra data for logs and API clients.
	// Treated as immutable; WithDetail/WithDetails always copy it.
	Details map[string]any

	// Cause is the wrapped underlying error.
	Cause error
}

var (
	_ apis.TypedError    = (*Error)(nil)
	_ apis.ReasonedError = (*Error)(nil)
	_ apis.DetailedError = (*Error)(nil)
	_ apis.ViewProvider  = (*Error)(nil)
)

// New returns an error of type t that reports the type's default message.
func New(t errortype.Type, opts ...Option) *Error {
	return E(t, "", opts...)
}

// E returns an error of type t with a custom message. An empty msg means
// the type's default message is used.
func E(t errortype.Type, msg string, opts ...Option) *Error {
	e := &Error{Type: t, CustomMessage: msg}
	for _, opt := range opts {
		e = opt(e)
	}
	return e
}

// Newf formats the custom message like fmt.Errorf. A single %w verb also
// becomes the cause.
func Newf(t errortype.Type, format string, args ...any) *Error {
	wrapped := fmt.Errorf(format, args...)
	e := &Error{Type: t, CustomMessage: wrapped.Error()}
	if u, ok := wrapped.(interface{ Unwrap() error }); ok {
		e.Cause = u.Unwrap()
	}
	return e
}

// Wrap returns an error of type t caused by err. A nil err still yields
// a non-nil error.
func Wrap(err error, t errortype.Type, msg string) *Error {
	return E(t, msg).WithCause(err)
}

// Message returns the custom message if set, otherwise the default
// message of the type.
func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	if e.CustomMessage != "" {
		return e.CustomMessage
	}
	return e.Type.Message()
}

// Error implements error. It returns Message(); the type and reason are
// available through the accessors and the zerolog marshaller.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message()
}

// Unwrap returns the cause for errors.Is / errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// GetType is the nil-safe accessor of Type.
func (e *Error) GetType() errortype.Type {
	if e == nil {
		return errortype.Empty
	}
	return e.Type
}

// GetCustomMessage is the nil-safe accessor of CustomMessage.
func (e *Error) GetCustomMessage() string {
	if e == nil {
		return ""
	}
	return e.CustomMessage
}

// ErrorCode implements apis.TypedError.
func (e *Error) ErrorCode() string { return string(e.GetType()) }

// ErrorReason implements apis.ReasonedError.
func (e *Error) ErrorReason() string {
	if e == nil {
		return ""
	}
	return string(e.Reason)
}

// ErrorDetails implements apis.DetailedError. Entries holding an
// apis.Detail are returned as is; any other value becomes an "extra"
// detail keyed by field. Output is sorted by key.
func (e *Error) ErrorDetails() []apis.Detail {
	if e == nil || len(e.Details) == 0 {
		return nil
	}
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]apis.Detail, 0, len(keys))
	for _, k := range keys {
		switch v := e.Details[k].(type) {
		case apis.Detail:
			out = append(out, v)
		default:
			out = append(out, apis.Detail{
				Type:  "extra",
				Field: k,
				Info:  map[string]string{"value": fmt.Sprint(v)},
			})
		}
	}
	return out
}

// ErrorView implements apis.ViewProvider: the effective message and the
// sorted details, never the cause.
func (e *Error) ErrorView() apis.ErrorView {
	if e == nil {
		return apis.ErrorView{}
	}
	return apis.ErrorView{
		Type:    e.ErrorCode(),
		Reason:  e.ErrorReason(),
		Message: e.Message(),
		Details: e.ErrorDetails(),
	}
}

// WithReason returns a copy of e with Reason set.
func (e *Error) WithReason(r reason.Reason) *Error {
	cp := *e
	cp.Reason = r
	return &cp
}

// WithMessage returns a copy of e with a replaced custom message.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.CustomMessage = msg
	return &cp
}

// WithDetail returns a copy of e with one more key/value in Details.
func (e *Error) WithDetail(k string, v any) *Error {
	cp := *e
	if len(cp.Details) == 0 {
		cp.Details = map[string]any{k: v}
		return &cp
	}
	m := make(map[string]any, len(cp.Details)+1)
	for k0, v0 := range cp.Details {
		m[k0] = v0
	}
	m[k] = v
	cp.Details = m
	return &cp
}

// WithDetails returns a copy of e with kv merged into Details; kv wins on
// key conflicts.
func (e *Error) WithDetails(kv map[string]any) *Error {
	if len(kv) == 0 {
		return e
	}
	cp := *e
	m := make(map[string]any, len(cp.Details)+len(kv))
	for k0, v0 := range cp.Details {
		m[k0] = v0
	}
	for k, v := range kv {
		m[k] = v
	}
	cp.Details = m
	return &cp
}

// WithField records a field-level validation failure, e.g.
// WithField("discountValue", "must_be_positive").
func (e *Error) WithField(field, why string) *Error {
	return e.WithDetail(field, apis.Detail{Type: "field", Field: field, Reason: why})
}

// WithCause returns a copy of e wrapping err. A nil err returns e.
func (e *Error) WithCause(err error) *Error {
	if err == nil {
		return e
	}
	cp := *e
	cp.Cause = err
	return &cp
}

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

package coreerr

import (
	"context"
	"errors"

	"dirpx.dev/coreerr/apis"
	"dirpx.dev/coreerr/errortype"
	"dirpx.dev/coreerr/reason"
)

// Sentinels for errors.Is. Refining a sentinel (WithMessage, WithReason,
// WithCause, ...) keeps it matching:
//
//	err := coreerr.ErrNotFound.WithMessage("coupon 42 does not exist")
//	errors.Is(err, coreerr.ErrNotFound) // true
var (
	ErrInternal        = New(errortype.InternalError)
	ErrBadRequest      = New(errortype.BadRequest)
	ErrNotFound        = New(errortype.NotFound)
	ErrConflict        = New(errortype.Conflict)
	ErrUnauthorized    = New(errortype.Unauthorized)
	ErrForbidden       = New(errortype.Forbidden)
	ErrTooManyRequests = New(errortype.TooManyRequests)
	ErrUnavailable     = New(errortype.Unavailable)
	ErrTimeout         = New(errortype.Timeout)
	ErrCanceled        = New(errortype.Canceled)
)

// Is reports whether target is an *Error describing e: same type, a
// target reason that is a segment prefix of e's reason, and an equal
// custom message when the target sets one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil || e == nil {
		return false
	}
	if t.Type != e.Type {
		return false
	}
	if !e.Reason.HasPrefix(t.Reason) {
		return false
	}
	if t.CustomMessage != "" && t.CustomMessage != e.CustomMessage {
		return false
	}
	return true
}

// As finds the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e, true
	}
	return nil, false
}

// IsType reports whether err's chain holds an *Error of type t.
func IsType(err error, t errortype.Type) bool {
	e, ok := As(err)
	return ok && e.Type == t
}

// TypeOf classifies err: Empty for nil, the type of the first *Error in
// the chain, otherwise what From would assign.
func TypeOf(err error) errortype.Type {
	if err == nil {
		return errortype.Empty
	}
	return From(err).Type
}

// From normalizes any error into an *Error.
//
//   - nil stays nil;
//   - an *Error in the chain is returned as is;
//   - context deadline / cancellation become timeout / canceled;
//   - a foreign apis.TypedError or apis.ViewProvider keeps its type,
//     reason and message when they parse;
//   - anything else is internal_error with err as the cause.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := As(err); ok {
		return e
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(err, errortype.Timeout, "")
	case errors.Is(err, context.Canceled):
		return Wrap(err, errortype.Canceled, "")
	}

	var typed apis.TypedError
	if errors.As(err, &typed) {
		if t, perr := errortype.Parse(typed.ErrorCode()); perr == nil {
			e := Wrap(err, t, typed.Error())
			var reasoned apis.ReasonedError
			if errors.As(err, &reasoned) {
				if r, rerr := reason.Parse(reasoned.ErrorReason()); rerr == nil {
					e.Reason = r
				}
			}
			return e
		}
	}
	var vp apis.ViewProvider
	if errors.As(err, &vp) {
		v := vp.ErrorView()
		if t, perr := errortype.Parse(v.Type); perr == nil {
			e := Wrap(err, t, v.Message)
			if r, rerr := reason.Parse(v.Reason); rerr == nil {
				e.Reason = r
			}
			return e
		}
	}
	return Wrap(err, errortype.InternalError, "")
}

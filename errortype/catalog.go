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

package errortype

import "net/http"

// Built-in types.
//
// The first four are the ones every service needs; handlers and domain
// code should reach for them before anything else.
const (
	// InternalError is the fallback for anything unclassified. Its message
	// never reveals the cause.
	InternalError Type = "internal_error"

	// BadRequest: the input violates a rule of the domain (blank field,
	// non-positive amount, illegal state transition requested by the client).
	BadRequest Type = "bad_request"

	// NotFound: the referenced entity does not exist or is not visible.
	NotFound Type = "not_found"

	// Conflict: the entity already exists, or a concurrent change won
	// (optimistic lock, double spend, duplicate issue).
	Conflict Type = "conflict"
)

const (
	Unauthorized    Type = "unauthorized"
	Forbidden       Type = "forbidden"
	TooManyRequests Type = "too_many_requests"

	// Unavailable: a downstream dependency (payment gateway, database) is
	// unreachable. Usually retryable.
	Unavailable Type = "unavailable"

	Timeout Type = "timeout"

	// Canceled: the caller went away or the context was canceled.
	Canceled Type = "canceled"
)

// Descriptor is the static description of a type.
type Descriptor struct {
	Type       Type
	HTTPStatus int
	// Message is the client-safe default message.
	Message string
}

// Phrase is the HTTP reason phrase for the descriptor's status,
// e.g. "Not Found".
func (d Descriptor) Phrase() string {
	return http.StatusText(d.HTTPStatus)
}

// catalog lists built-in types in presentation order.
var catalog = []Descriptor{
	{InternalError, http.StatusInternalServerError, "A temporary error has occurred."},
	{BadRequest, http.StatusBadRequest, "The request is invalid."},
	{NotFound, http.StatusNotFound, "The requested resource does not exist."},
	{Conflict, http.StatusConflict, "The resource already exists or was modified concurrently."},
	{Unauthorized, http.StatusUnauthorized, "Authentication is required."},
	{Forbidden, http.StatusForbidden, "You are not allowed to perform this action."},
	{TooManyRequests, http.StatusTooManyRequests, "Too many requests. Please try again later."},
	{Unavailable, http.StatusServiceUnavailable, "The service is temporarily unavailable."},
	{Timeout, http.StatusGatewayTimeout, "The operation timed out."},
	{Canceled, http.StatusRequestTimeout, "The request was canceled."},
}

var byType = func() map[Type]Descriptor {
	m := make(map[Type]Descriptor, len(catalog))
	for _, d := range catalog {
		m[d.Type] = d
	}
	return m
}()

// Lookup returns the descriptor of a built-in type.
func Lookup(t Type) (Descriptor, bool) {
	d, ok := byType[t]
	return d, ok
}

// All returns the built-in descriptors in presentation order.
// The returned slice is a copy.
func All() []Descriptor {
	out := make([]Descriptor, len(catalog))
	copy(out, catalog)
	return out
}

// Known reports whether t is a built-in type.
func (t Type) Known() bool {
	_, ok := byType[t]
	return ok
}

// describe falls back to InternalError for unknown types so that a
// custom type never produces a zero status or an empty message.
func (t Type) describe() Descriptor {
	if d, ok := byType[t]; ok {
		return d
	}
	d := byType[InternalError]
	d.Type = t
	return d
}

// HTTPStatus is the catalogue status of t; 500 for unknown types.
func (t Type) HTTPStatus() int { return t.describe().HTTPStatus }

// Phrase is the HTTP reason phrase of t's status.
func (t Type) Phrase() string { return t.describe().Phrase() }

// Message is the default client-safe message of t.
func (t Type) Message() string { return t.describe().Message }

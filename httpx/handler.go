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

package httpx

import (
	"net/http"

	"dirpx.dev/coreerr"
	"dirpx.dev/coreerr/errortype"
	"dirpx.dev/coreerr/reason"
)

var (
	errRouteNotFound = coreerr.New(errortype.NotFound,
		coreerr.WithReasonOption(reason.MustParse("http.route.not_found")))

	errMethodNotAllowed = coreerr.E(errortype.BadRequest, "The method is not allowed for this resource.",
		coreerr.WithReasonOption(reason.MustParse("http.method.not_allowed")))
)

// HandlerFunc is an HTTP handler that reports failure by returning an
// error instead of writing it.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// Handle adapts fn to http.HandlerFunc, writing any returned error with w.
func (w Writer) Handle(fn HandlerFunc) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if err := fn(rw, r); err != nil {
			w.WriteError(rw, r, err)
		}
	}
}

// Handle is Writer.Handle with the zero Writer.
func Handle(fn HandlerFunc) http.HandlerFunc {
	return Writer{}.Handle(fn)
}

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
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"dirpx.dev/coreerr"
	"dirpx.dev/coreerr/errortype"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestIDHeader carries the request id on requests and responses.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestID returns the id of r: the one assigned by RequestLogger, then
// chi's middleware.RequestID, then the X-Request-ID header. It may be
// empty.
func RequestID(r *http.Request) string {
	if id, ok := r.Context().Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	if id := middleware.GetReqID(r.Context()); id != "" {
		return id
	}
	return r.Header.Get(RequestIDHeader)
}

// RequestLogger attaches a child of base carrying request_id to the
// request context (see zerolog.Ctx), echoes the id in the response and
// logs one line per request. Requests without an id get a random UUID.
func RequestLogger(base zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := RequestID(r)
			if id == "" {
				id = uuid.NewString()
			}

			l := base.With().Str("request_id", id).Logger()
			ctx := context.WithValue(l.WithContext(r.Context()), requestIDKey{}, id)
			r = r.WithContext(ctx)
			w.Header().Set(RequestIDHeader, id)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			l.Info().
				Str("method", r.Method).
				Str("uri", r.RequestURI).
				Int("status", status).
				Dur("duration", time.Since(start)).
				Int("size", ww.BytesWritten()).
				Msg("request")
		})
	}
}

// Recoverer turns panics into internal_error envelopes. The panic value
// and stack are logged; neither reaches the client. When the handler had
// already started the response, nothing more is written.
// http.ErrAbortHandler is re-panicked.
func (w Writer) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(rw, r.ProtoMajor)
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			started := ww.Status() != 0
			w.logger(r).Error().
				Interface("panic", rec).
				Str("stack", string(debug.Stack())).
				Bool("response_started", started).
				Msg("panic recovered")
			if started {
				return
			}
			w.WriteError(ww, r, coreerr.Wrap(fmt.Errorf("panic: %v", rec), errortype.InternalError, ""))
		}()
		next.ServeHTTP(ww, r)
	})
}

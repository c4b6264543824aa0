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
	"math"
	"net/http"
	"strconv"

	"dirpx.dev/coreerr"
	"dirpx.dev/coreerr/adapter"
	"dirpx.dev/coreerr/apis"
	"dirpx.dev/coreerr/mapper"
	"github.com/rs/zerolog"
)

var defaultMapper = mapper.Must()

// Writer turns errors into FAIL envelopes.
//
// The zero value is usable: it resolves statuses with the built-in
// mapper and logs only through a request logger found in the context.
type Writer struct {
	Mapper apis.Mapper
	// Logger is used when the request context carries no logger. Nil
	// discards.
	Logger *zerolog.Logger
}

var nopLogger = zerolog.Nop()

func (w Writer) mapper() apis.Mapper {
	if w.Mapper != nil {
		return w.Mapper
	}
	return defaultMapper
}

func (w Writer) logger(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	if w.Logger != nil {
		return w.Logger
	}
	return &nopLogger
}

// WriteError writes err as a FAIL envelope. Any error is accepted and
// normalized with coreerr.From; a nil err writes nothing. The envelope is
// taken from the first apis.ViewProvider in the chain.
//
// Server errors (5xx) are logged at error level with their cause, client
// errors at debug level. Details are only sent for client errors.
func (w Writer) WriteError(rw http.ResponseWriter, r *http.Request, err error) {
	e := coreerr.From(err)
	if e == nil {
		return
	}
	st := w.mapper().Status(e.GetType(), e.Reason)
	w.write(rw, r, e, adapter.ViewOf(err), st, e.GetType().Phrase())
}

// write renders view with a resolved status; e is what gets logged.
// errorCode is the phrase shown to clients.
func (w Writer) write(rw http.ResponseWriter, r *http.Request, e *coreerr.Error, view apis.ErrorView, st apis.Status, errorCode string) {
	desc := adapter.ToDescriptor(e, st)
	reqID := RequestID(r)

	ev := w.logger(r).Debug()
	if st.HTTP >= http.StatusInternalServerError {
		ev = w.logger(r).Error()
	}
	ev.Object("error", e).
		Int("status", desc.HTTPStatus).
		Int("grpc_code", desc.GRPCCode).
		Str("method", r.Method).
		Str("uri", r.RequestURI).
		Msg("request failed")

	meta := Meta{
		Result:    ResultFail,
		ErrorCode: errorCode,
		Message:   view.Message,
		Type:      view.Type,
		Reason:    view.Reason,
		RequestID: reqID,
	}
	if st.HTTP < http.StatusInternalServerError {
		meta.Details = view.Details
	}

	if reqID != "" {
		rw.Header().Set(RequestIDHeader, reqID)
	}
	if d, ok := e.RetryAfter(); ok {
		rw.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(d.Seconds()))))
	}
	if err := writeEnvelope(rw, st.HTTP, Response{Meta: meta}); err != nil {
		w.logger(r).Warn().Err(err).Msg("write error response")
	}
}

// NotFound is a chi NotFound handler writing a not_found envelope.
func (w Writer) NotFound(rw http.ResponseWriter, r *http.Request) {
	w.WriteError(rw, r, errRouteNotFound)
}

// MethodNotAllowed is a chi MethodNotAllowed handler. It answers 405
// whatever the mapper says about bad_request.
func (w Writer) MethodNotAllowed(rw http.ResponseWriter, r *http.Request) {
	st := apis.Status{HTTP: http.StatusMethodNotAllowed, GRPC: w.mapper().GRPCStatus(errMethodNotAllowed.Type, errMethodNotAllowed.Reason)}
	w.write(rw, r, errMethodNotAllowed, adapter.ToView(errMethodNotAllowed), st, http.StatusText(http.StatusMethodNotAllowed))
}

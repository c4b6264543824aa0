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

package grpcx

import (
	"context"
	"net/http"
	"strconv"

	"dirpx.dev/coreerr"
	"dirpx.dev/coreerr/errortype"
	"dirpx.dev/coreerr/reason"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// codeTypes classifies statuses that carry no ErrorInfo from this domain.
var codeTypes = map[codes.Code]errortype.Type{
	codes.Canceled:           errortype.Canceled,
	codes.InvalidArgument:    errortype.BadRequest,
	codes.OutOfRange:         errortype.BadRequest,
	codes.FailedPrecondition: errortype.BadRequest,
	codes.DeadlineExceeded:   errortype.Timeout,
	codes.NotFound:           errortype.NotFound,
	codes.AlreadyExists:      errortype.Conflict,
	codes.Aborted:            errortype.Conflict,
	codes.PermissionDenied:   errortype.Forbidden,
	codes.ResourceExhausted:  errortype.TooManyRequests,
	codes.Unauthenticated:    errortype.Unauthorized,
	codes.Unavailable:        errortype.Unavailable,
}

// FromError rebuilds a *coreerr.Error from a gRPC error.
//
// Statuses produced by ToStatus keep their type, reason, message and
// details. Other statuses are classified by code; their message is kept
// except for internal errors. The received error is the cause. Errors
// without a status go through coreerr.From. Nil and OK yield nil.
func FromError(err error) *coreerr.Error {
	if err == nil {
		return nil
	}
	s, ok := status.FromError(err)
	if !ok {
		return coreerr.From(err)
	}
	if s.Code() == codes.OK {
		return nil
	}

	info, ok := infoOf(s)
	if !ok {
		t, known := codeTypes[s.Code()]
		if !known {
			return coreerr.Wrap(err, errortype.InternalError, "")
		}
		return coreerr.Wrap(err, t, s.Message())
	}

	t, perr := errortype.Parse(info.GetReason())
	if perr != nil {
		t = errortype.InternalError
	}
	e := coreerr.Wrap(err, t, "")
	md := info.GetMetadata()
	if msg := md[MetaMessage]; msg != "" && msg != t.Message() {
		e.CustomMessage = msg
	}
	if r, rerr := reason.Parse(md[MetaReason]); rerr == nil {
		e.Reason = r
	}

	for _, d := range s.Details() {
		switch d := d.(type) {
		case *errdetails.BadRequest:
			for _, v := range d.GetFieldViolations() {
				e = e.WithField(v.GetField(), v.GetDescription())
			}
		case *errdetails.RetryInfo:
			if delay := d.GetRetryDelay().AsDuration(); delay > 0 {
				e = e.WithRetryAfter(delay)
			}
		case *structpb.Struct:
			e = e.WithDetails(d.AsMap())
		}
	}
	return e
}

// HTTPStatus returns the HTTP status recorded by the server for err, if
// any.
func HTTPStatus(err error) (int, bool) {
	info, ok := ExtractInfo(err)
	if !ok {
		return 0, false
	}
	h, perr := strconv.Atoi(info.GetMetadata()[MetaHTTPStatus])
	if perr != nil || http.StatusText(h) == "" {
		return 0, false
	}
	return h, true
}

// ExtractInfo pulls the coreerr ErrorInfo out of a gRPC error.
func ExtractInfo(err error) (*errdetails.ErrorInfo, bool) {
	if err == nil {
		return nil, false
	}
	s, ok := status.FromError(err)
	if !ok {
		return nil, false
	}
	return infoOf(s)
}

func infoOf(s *status.Status) (*errdetails.ErrorInfo, bool) {
	for _, d := range s.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == Domain {
			return info, true
		}
	}
	return nil, false
}

// UnaryClientInterceptor converts errors returned by calls into
// *coreerr.Error with FromError.
func UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		err := invoker(ctx, method, req, reply, cc, opts...)
		if err == nil {
			return nil
		}
		if e := FromError(err); e != nil {
			return e
		}
		return err
	}
}

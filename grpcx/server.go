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
	"fmt"
	"sort"
	"strconv"

	"dirpx.dev/coreerr"
	"dirpx.dev/coreerr/apis"
	"dirpx.dev/coreerr/mapper"
	"github.com/rs/zerolog"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/protoadapt"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/structpb"
)

// Domain is the ErrorInfo domain of statuses produced by this package.
const Domain = "dirpx.dev/coreerr"

// Metadata keys of the ErrorInfo detail.
const (
	MetaReason     = "reason"
	MetaMessage    = "message"
	MetaHTTPStatus = "http_status"
)

var (
	defaultMapper = mapper.Must()
	nopLogger     = zerolog.Nop()
)

// ToStatus converts err into a gRPC status using m (the built-in mapper
// when nil). Errors that already carry a status and no *coreerr.Error
// are returned unchanged. A nil err yields nil.
func ToStatus(m apis.Mapper, err error) *status.Status {
	if err == nil {
		return nil
	}
	e, ok := coreerr.As(err)
	if !ok {
		if s, ok := status.FromError(err); ok {
			return s
		}
		e = coreerr.From(err)
	}
	if m == nil {
		m = defaultMapper
	}
	return build(e, m.Status(e.GetType(), e.Reason))
}

func build(e *coreerr.Error, st apis.Status) *status.Status {
	// An OK status cannot carry an error.
	if st.GRPC == codes.OK {
		st.GRPC = codes.Unknown
	}
	s := status.New(st.GRPC, e.Message())

	md := map[string]string{
		MetaMessage:    e.Message(),
		MetaHTTPStatus: strconv.Itoa(st.HTTP),
	}
	if e.Reason != "" {
		md[MetaReason] = string(e.Reason)
	}
	details := []protoadapt.MessageV1{&errdetails.ErrorInfo{
		Reason:   e.GetType().Upper(),
		Domain:   Domain,
		Metadata: md,
	}}

	if d, ok := e.RetryAfter(); ok {
		details = append(details, &errdetails.RetryInfo{RetryDelay: durationpb.New(d)})
	}
	if st.HTTP < 500 {
		if br := fieldViolations(e); br != nil {
			details = append(details, br)
		}
		if sv := extras(e); sv != nil {
			details = append(details, sv)
		}
	}

	with, err := s.WithDetails(details...)
	if err != nil {
		return s
	}
	return with
}

// fieldViolations collects the field details of e, sorted by field.
func fieldViolations(e *coreerr.Error) *errdetails.BadRequest {
	var br errdetails.BadRequest
	for _, d := range e.ErrorDetails() {
		if d.Type != "field" {
			continue
		}
		br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       d.Field,
			Description: d.Reason,
		})
	}
	if len(br.FieldViolations) == 0 {
		return nil
	}
	return &br
}

// extras holds the details that are neither field violations nor the
// retry hint. Values structpb cannot represent are sent as text.
func extras(e *coreerr.Error) *structpb.Struct {
	keys := make([]string, 0, len(e.Details))
	for k, v := range e.Details {
		if d, ok := v.(apis.Detail); (ok && d.Type == "field") || k == coreerr.RetryAfterDetail {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return nil
	}
	sort.Strings(keys)

	fields := make(map[string]*structpb.Value, len(keys))
	for _, k := range keys {
		v := e.Details[k]
		if d, ok := v.(apis.Detail); ok {
			v = detailMap(d)
		}
		pv, err := structpb.NewValue(v)
		if err != nil {
			pv = structpb.NewStringValue(fmt.Sprint(v))
		}
		fields[k] = pv
	}
	return &structpb.Struct{Fields: fields}
}

func detailMap(d apis.Detail) map[string]any {
	m := map[string]any{"type": d.Type}
	if d.Field != "" {
		m["field"] = d.Field
	}
	if d.Reason != "" {
		m["reason"] = d.Reason
	}
	if len(d.Info) > 0 {
		info := make(map[string]any, len(d.Info))
		for k, v := range d.Info {
			info[k] = v
		}
		m["info"] = info
	}
	return m
}

// UnaryServerInterceptor converts handler errors with ToStatus and logs
// them: server errors at error level, the rest at debug. The request
// logger from the context (zerolog.Ctx) wins over log; nil log discards.
func UnaryServerInterceptor(m apis.Mapper, log *zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		return nil, convert(ctx, m, log, info.FullMethod, err)
	}
}

// StreamServerInterceptor is the streaming counterpart of
// UnaryServerInterceptor.
func StreamServerInterceptor(m apis.Mapper, log *zerolog.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		err := handler(srv, ss)
		if err == nil {
			return nil
		}
		return convert(ss.Context(), m, log, info.FullMethod, err)
	}
}

func convert(ctx context.Context, m apis.Mapper, log *zerolog.Logger, method string, err error) error {
	s := ToStatus(m, err)

	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		l = log
		if l == nil {
			l = &nopLogger
		}
	}
	e := coreerr.From(err)
	if _, ok := coreerr.As(err); !ok {
		if _, native := status.FromError(err); native {
			e = FromError(err)
		}
	}
	ev := l.Debug()
	if serverSide(s) {
		ev = l.Error()
	}
	ev.Str("method", method).
		Str("code", s.Code().String()).
		Object("error", e).
		Msg("rpc failed")

	return s.Err()
}

// serverSide reports whether s describes a server fault, preferring the
// HTTP status recorded in ErrorInfo.
func serverSide(s *status.Status) bool {
	if info, ok := infoOf(s); ok {
		if h, err := strconv.Atoi(info.GetMetadata()[MetaHTTPStatus]); err == nil {
			return h >= 500
		}
	}
	switch s.Code() {
	case codes.Unknown, codes.Internal, codes.Unimplemented, codes.DataLoss,
		codes.Unavailable, codes.DeadlineExceeded:
		return true
	}
	return false
}

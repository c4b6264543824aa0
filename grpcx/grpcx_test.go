package grpcx

import (
	"bytes"
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"dirpx.dev/coreerr"
	"dirpx.dev/coreerr/errortype"
	"dirpx.dev/coreerr/mapper"
	"dirpx.dev/coreerr/reason"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

// healthServer fails every call with the error registered for the
// requested service name.
type healthServer struct {
	healthpb.UnimplementedHealthServer
	errs map[string]error
}

func (h *healthServer) Check(_ context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	if err := h.errs[req.GetService()]; err != nil {
		return nil, err
	}
	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
}

func (h *healthServer) Watch(req *healthpb.HealthCheckRequest, _ healthpb.Health_WatchServer) error {
	return h.errs[req.GetService()]
}

var testErrs = map[string]error{
	"coupon": coreerr.E(errortype.Conflict, "coupon already used").
		WithReason(reason.MustParse("coupon.use.duplicate")).
		WithDetail("coupon_id", "c-42"),
	"order": coreerr.New(errortype.BadRequest).
		WithField("quantity", "must_be_positive"),
	"limit": coreerr.New(errortype.TooManyRequests).
		WithDetail(coreerr.RetryAfterDetail, 3),
	"gateway": coreerr.New(errortype.Unavailable).
		WithRetryAfter(30 * time.Second),
	"db":       errors.New("pq: connection refused"),
	"deadline": context.DeadlineExceeded,
	"native":   status.Error(codes.FailedPrecondition, "stock is frozen"),
}

func startServer(t *testing.T, log *zerolog.Logger, opts ...mapper.Option) healthpb.HealthClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(UnaryServerInterceptor(mapper.Must(opts...), log)),
		grpc.ChainStreamInterceptor(StreamServerInterceptor(mapper.Must(opts...), log)),
	)
	healthpb.RegisterHealthServer(srv, &healthServer{errs: testErrs})
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return healthpb.NewHealthClient(conn)
}

func check(t *testing.T, c healthpb.HealthClient, service string) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := c.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	return err
}

func TestUnaryServerInterceptor_Codes(t *testing.T) {
	c := startServer(t, nil)

	tests := []struct {
		service string
		want    codes.Code
		wantMsg string
	}{
		{"coupon", codes.Aborted, "coupon already used"},
		{"order", codes.InvalidArgument, errortype.BadRequest.Message()},
		{"limit", codes.ResourceExhausted, errortype.TooManyRequests.Message()},
		{"db", codes.Internal, errortype.InternalError.Message()},
		{"deadline", codes.DeadlineExceeded, errortype.Timeout.Message()},
		{"native", codes.FailedPrecondition, "stock is frozen"},
	}
	for _, tt := range tests {
		t.Run(tt.service, func(t *testing.T) {
			s := status.Convert(check(t, c, tt.service))
			assert.Equal(t, tt.want, s.Code())
			assert.Equal(t, tt.wantMsg, s.Message())
		})
	}
	assert.NoError(t, check(t, c, "healthy"))
}

func TestUnaryServerInterceptor_Details(t *testing.T) {
	c := startServer(t, nil)

	err := check(t, c, "coupon")
	info, ok := ExtractInfo(err)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", info.GetReason())
	assert.Equal(t, Domain, info.GetDomain())
	assert.Equal(t, "coupon.use.duplicate", info.GetMetadata()[MetaReason])
	assert.Equal(t, "coupon already used", info.GetMetadata()[MetaMessage])

	h, ok := HTTPStatus(err)
	require.True(t, ok)
	assert.Equal(t, 409, h)

	var extras *structpb.Struct
	for _, d := range status.Convert(err).Details() {
		if sv, ok := d.(*structpb.Struct); ok {
			extras = sv
		}
	}
	require.NotNil(t, extras)
	assert.Equal(t, "c-42", extras.GetFields()["coupon_id"].GetStringValue())
}

func TestUnaryServerInterceptor_FieldViolationsAndRetry(t *testing.T) {
	c := startServer(t, nil)

	var br *errdetails.BadRequest
	for _, d := range status.Convert(check(t, c, "order")).Details() {
		if v, ok := d.(*errdetails.BadRequest); ok {
			br = v
		}
	}
	require.NotNil(t, br)
	require.Len(t, br.GetFieldViolations(), 1)
	assert.Equal(t, "quantity", br.GetFieldViolations()[0].GetField())
	assert.Equal(t, "must_be_positive", br.GetFieldViolations()[0].GetDescription())

	tests := []struct {
		service string
		want    time.Duration
	}{
		{"limit", 3 * time.Second},
		{"gateway", 30 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.service, func(t *testing.T) {
			err := check(t, c, tt.service)
			var ri *errdetails.RetryInfo
			for _, d := range status.Convert(err).Details() {
				if v, ok := d.(*errdetails.RetryInfo); ok {
					ri = v
				}
			}
			require.NotNil(t, ri)
			assert.Equal(t, tt.want, ri.GetRetryDelay().AsDuration())

			got, ok := FromError(err).RetryAfter()
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	// Server errors carry the retry hint but no client-only details.
	s := status.Convert(check(t, c, "gateway"))
	assert.Equal(t, codes.Unavailable, s.Code())
	assert.Len(t, s.Details(), 2)
}

func TestUnaryServerInterceptor_InternalHasNoExtras(t *testing.T) {
	c := startServer(t, nil)

	s := status.Convert(check(t, c, "db"))
	require.Len(t, s.Details(), 1)
	assert.NotContains(t, s.Message(), "pq:")
}

func TestUnaryServerInterceptor_Mapper(t *testing.T) {
	c := startServer(t, nil,
		mapper.WithGRPCPrefix(errortype.Conflict, "coupon.use", codes.FailedPrecondition),
	)
	assert.Equal(t, codes.FailedPrecondition, status.Code(check(t, c, "coupon")))
}

func TestUnaryServerInterceptor_Logs(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)
	c := startServer(t, &l)

	require.Error(t, check(t, c, "db"))
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), `"method":"/grpc.health.v1.Health/Check"`)
	assert.Contains(t, buf.String(), `"cause":"pq: connection refused"`)

	buf.Reset()
	require.Error(t, check(t, c, "order"))
	assert.Contains(t, buf.String(), `"level":"debug"`)
}

func TestStreamServerInterceptor(t *testing.T) {
	c := startServer(t, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	stream, err := c.Watch(ctx, &healthpb.HealthCheckRequest{Service: "coupon"})
	require.NoError(t, err)
	_, err = stream.Recv()

	e := FromError(err)
	require.NotNil(t, e)
	assert.Equal(t, errortype.Conflict, e.Type)
	assert.Equal(t, reason.Reason("coupon.use.duplicate"), e.Reason)
}

func TestFromError_RoundTrip(t *testing.T) {
	c := startServer(t, nil)

	e := FromError(check(t, c, "coupon"))
	require.NotNil(t, e)
	assert.Equal(t, errortype.Conflict, e.Type)
	assert.Equal(t, "coupon already used", e.CustomMessage)
	assert.Equal(t, "c-42", e.Details["coupon_id"])
	assert.True(t, errors.Is(e, coreerr.ErrConflict))

	e = FromError(check(t, c, "order"))
	assert.Empty(t, e.CustomMessage, "default message is not turned into a custom one")
	assert.Equal(t, errortype.BadRequest.Message(), e.Message())
	require.Len(t, e.ErrorDetails(), 1)
	assert.Equal(t, "quantity", e.ErrorDetails()[0].Field)

	e = FromError(check(t, c, "limit"))
	assert.Equal(t, 3.0, e.Details[coreerr.RetryAfterDetail])
}

func TestFromError_PlainStatus(t *testing.T) {
	tests := []struct {
		err     error
		want    errortype.Type
		wantMsg string
	}{
		{status.Error(codes.NotFound, "no such order"), errortype.NotFound, "no such order"},
		{status.Error(codes.AlreadyExists, "dup"), errortype.Conflict, "dup"},
		{status.Error(codes.Unauthenticated, "token expired"), errortype.Unauthorized, "token expired"},
		{status.Error(codes.Internal, "nil pointer"), errortype.InternalError, errortype.InternalError.Message()},
		{status.Error(codes.DataLoss, "disk"), errortype.InternalError, errortype.InternalError.Message()},
	}
	for _, tt := range tests {
		e := FromError(tt.err)
		require.NotNil(t, e)
		assert.Equal(t, tt.want, e.Type, tt.err.Error())
		assert.Equal(t, tt.wantMsg, e.Message())
		assert.Equal(t, tt.err, e.Cause)
	}
}

func TestFromError_Edges(t *testing.T) {
	assert.Nil(t, FromError(nil))
	assert.Nil(t, FromError(status.Error(codes.OK, "")))

	e := FromError(context.Canceled)
	assert.Equal(t, errortype.Canceled, e.Type)

	_, ok := ExtractInfo(errors.New("plain"))
	assert.False(t, ok)
	_, ok = ExtractInfo(status.Error(codes.NotFound, "x"))
	assert.False(t, ok)
	_, ok = HTTPStatus(nil)
	assert.False(t, ok)
}

func TestToStatus(t *testing.T) {
	assert.Nil(t, ToStatus(nil, nil))

	got := ToStatus(nil, status.Error(codes.Unimplemented, "later"))
	assert.Equal(t, codes.Unimplemented, got.Code())
	assert.Equal(t, "later", got.Message())
	assert.Empty(t, got.Details())

	s := ToStatus(mapper.Must(mapper.WithGRPCOverride(errortype.NotFound, codes.OK)), coreerr.New(errortype.NotFound))
	assert.Equal(t, codes.Unknown, s.Code(), "OK is never used for an error")
}

func TestUnaryClientInterceptor(t *testing.T) {
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.UnaryInterceptor(UnaryServerInterceptor(nil, nil)))
	healthpb.RegisterHealthServer(srv, &healthServer{errs: testErrs})
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(UnaryClientInterceptor()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	err = check(t, healthpb.NewHealthClient(conn), "coupon")
	e, ok := coreerr.As(err)
	require.True(t, ok, "client sees *coreerr.Error")
	assert.Equal(t, errortype.Conflict, e.Type)
	assert.Equal(t, codes.Aborted, status.Code(err), "status stays reachable through the cause")

	assert.NoError(t, check(t, healthpb.NewHealthClient(conn), "healthy"))
}

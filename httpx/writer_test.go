package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dirpx.dev/coreerr"
	"dirpx.dev/coreerr/apis"
	"dirpx.dev/coreerr/errortype"
	"dirpx.dev/coreerr/mapper"
	"dirpx.dev/coreerr/reason"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMeta   Meta
	}{
		{
			name:       "default message",
			err:        coreerr.New(errortype.NotFound),
			wantStatus: http.StatusNotFound,
			wantMeta: Meta{
				Result:    ResultFail,
				ErrorCode: "Not Found",
				Message:   errortype.NotFound.Message(),
				Type:      "not_found",
			},
		},
		{
			name:       "custom message and reason",
			err:        coreerr.E(errortype.Conflict, "coupon already used").WithReason(reason.MustParse("coupon.use.duplicate")),
			wantStatus: http.StatusConflict,
			wantMeta: Meta{
				Result:    ResultFail,
				ErrorCode: "Conflict",
				Message:   "coupon already used",
				Type:      "conflict",
				Reason:    "coupon.use.duplicate",
			},
		},
		{
			name:       "plain error hides cause",
			err:        errors.New("pq: password authentication failed"),
			wantStatus: http.StatusInternalServerError,
			wantMeta: Meta{
				Result:    ResultFail,
				ErrorCode: "Internal Server Error",
				Message:   errortype.InternalError.Message(),
				Type:      "internal_error",
			},
		},
		{
			name:       "wrapped context deadline",
			err:        fmt.Errorf("charge card: %w", context.DeadlineExceeded),
			wantStatus: http.StatusGatewayTimeout,
			wantMeta: Meta{
				Result:    ResultFail,
				ErrorCode: "Gateway Timeout",
				Message:   errortype.Timeout.Message(),
				Type:      "timeout",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/orders", nil)

			Writer{}.WriteError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, contentTypeJSON, rec.Header().Get("Content-Type"))
			resp := decode(t, rec)
			assert.Equal(t, tt.wantMeta, resp.Meta)
			assert.Nil(t, resp.Data)
			assert.NotContains(t, rec.Body.String(), "pq:")
		})
	}
}

func TestWriteError_Nil(t *testing.T) {
	rec := httptest.NewRecorder()
	Writer{}.WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	assert.Zero(t, rec.Body.Len())
	assert.Empty(t, rec.Header().Get("Content-Type"))
}

func TestWriteError_UsesMapper(t *testing.T) {
	m := mapper.Must(
		mapper.WithHTTPPrefix(errortype.Unavailable, "payment.gateway", http.StatusBadGateway),
		mapper.WithGRPCPrefix(errortype.Unavailable, "payment.gateway", codes.Unavailable),
	)
	w := Writer{Mapper: m}

	rec := httptest.NewRecorder()
	err := coreerr.New(errortype.Unavailable).WithReason(reason.MustParse("payment.gateway.timeout"))
	w.WriteError(rec, httptest.NewRequest(http.MethodPost, "/payments", nil), err)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	// errorCode follows the type, not the remapped status.
	assert.Equal(t, "Service Unavailable", decode(t, rec).Meta.ErrorCode)
}

func TestWriteError_Details(t *testing.T) {
	rec := httptest.NewRecorder()
	err := coreerr.New(errortype.BadRequest).WithField("quantity", "must_be_positive")
	Writer{}.WriteError(rec, httptest.NewRequest(http.MethodPost, "/orders", nil), err)

	details := decode(t, rec).Meta.Details
	require.Len(t, details, 1)
	assert.Equal(t, "field", details[0].Type)
	assert.Equal(t, "quantity", details[0].Field)
	assert.Equal(t, "must_be_positive", details[0].Reason)

	rec = httptest.NewRecorder()
	err5xx := coreerr.New(errortype.InternalError).WithDetail("table", "orders")
	Writer{}.WriteError(rec, httptest.NewRequest(http.MethodPost, "/orders", nil), err5xx)
	assert.Empty(t, decode(t, rec).Meta.Details)
	assert.NotContains(t, rec.Body.String(), "orders")
}

// limitError renders its own view, details included.
type limitError struct{}

func (limitError) Error() string { return "quota store: limit reached" }

func (limitError) ErrorView() apis.ErrorView {
	return apis.ErrorView{
		Type:    "too_many_requests",
		Reason:  "coupon.issue.quota",
		Message: "Coupon quota reached.",
		Details: []apis.Detail{{Type: "extra", Field: "limit", Info: map[string]string{"value": "100"}}},
	}
}

func TestWriteError_ViewProvider(t *testing.T) {
	rec := httptest.NewRecorder()
	Writer{}.WriteError(rec, httptest.NewRequest(http.MethodPost, "/coupons", nil), fmt.Errorf("issue: %w", limitError{}))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	meta := decode(t, rec).Meta
	assert.Equal(t, "too_many_requests", meta.Type)
	assert.Equal(t, "coupon.issue.quota", meta.Reason)
	assert.Equal(t, "Coupon quota reached.", meta.Message)
	require.Len(t, meta.Details, 1)
	assert.Equal(t, "limit", meta.Details[0].Field)
	assert.NotContains(t, rec.Body.String(), "quota store")
}

func TestWriteError_RetryAfter(t *testing.T) {
	tests := []struct {
		val  any
		want string
	}{
		{30, "30"},
		{int64(5), "5"},
		{1.2, "2"},
		{"15", "15"},
		{1500 * time.Millisecond, "2"},
		{0, ""},
		{-3, ""},
		{"soon", ""},
		{struct{}{}, ""},
		{int64(1) << 62, ""},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		err := coreerr.New(errortype.TooManyRequests).WithDetail(coreerr.RetryAfterDetail, tt.val)
		Writer{}.WriteError(rec, httptest.NewRequest(http.MethodGet, "/coupons", nil), err)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, tt.want, rec.Header().Get("Retry-After"), "value %#v", tt.val)
	}
}

func TestWriteError_Logging(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf).Level(zerolog.DebugLevel)
	w := Writer{Logger: &l}

	req := httptest.NewRequest(http.MethodGet, "/orders/7", nil)
	w.WriteError(httptest.NewRecorder(), req, errors.New("connection reset"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "error", line["level"])
	assert.EqualValues(t, 500, line["status"])
	assert.EqualValues(t, codes.Internal, line["grpc_code"])
	obj, ok := line["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "internal_error", obj["type"])
	assert.Equal(t, "connection reset", obj["cause"])

	buf.Reset()
	w.WriteError(httptest.NewRecorder(), req, coreerr.New(errortype.NotFound))
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "debug", line["level"])
}

func TestWriteError_PrefersContextLogger(t *testing.T) {
	var base, scoped bytes.Buffer
	bl := zerolog.New(&base)
	w := Writer{Logger: &bl}

	l := zerolog.New(&scoped)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(l.WithContext(req.Context()))

	w.WriteError(httptest.NewRecorder(), req, errors.New("boom"))
	assert.Zero(t, base.Len())
	assert.Contains(t, scoped.String(), `"request failed"`)
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteJSON(rec, http.StatusCreated, map[string]int{"id": 7}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"meta":{"result":"SUCCESS"},"data":{"id":7}}`, rec.Body.String())
}

func TestWriteJSON_Unencodable(t *testing.T) {
	rec := httptest.NewRecorder()
	err := WriteJSON(rec, http.StatusOK, make(chan int))
	assert.Error(t, err)
	assert.Zero(t, rec.Body.Len())
}

func TestFail(t *testing.T) {
	b, err := json.Marshal(Fail("Bad Request", "name is blank"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"meta":{"result":"FAIL","errorCode":"Bad Request","message":"name is blank"},"data":null}`, string(b))
}

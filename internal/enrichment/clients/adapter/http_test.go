package adapter

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"unibus/internal/enrichment/clients/adapter/mocks"
	"unibus/internal/enrichment/metrics"
	"unibus/pkg/requestcontext"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AdapterSuite struct {
	suite.Suite
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func TestAdapterSuite(t *testing.T) {
	suite.Run(t, new(AdapterSuite))
}

func (s *AdapterSuite) SetupTest() {
	s.metrics = metrics.NewWithRegistry(prometheus.NewRegistry())
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *AdapterSuite) newAdapter(baseURL string, timeout time.Duration, pass ...int) *Adapter {
	return New(Config{
		ID:           "test",
		BaseURL:      baseURL,
		Timeout:      timeout,
		PassStatuses: pass,
	}, WithLogger(s.logger), WithMetrics(s.metrics))
}

func (s *AdapterSuite) TestPostJSON() {
	s.Run("sends JSON body and returns 2xx response", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.Equal(http.MethodPost, r.Method)
			s.Equal("/distance", r.URL.Path)
			s.Equal("application/json", r.Header.Get("Content-Type"))
			s.Equal("req-42", r.Header.Get("X-Request-ID"))
			body, _ := io.ReadAll(r.Body)
			s.JSONEq(`{"origin":"Recife","destination":"Olinda"}`, string(body))
			_, _ = w.Write([]byte(`{"ok":true}`))
		}))
		defer srv.Close()

		ctx := requestcontext.WithRequestID(context.Background(), "req-42")
		resp, err := s.newAdapter(srv.URL+"/", time.Second).PostJSON(ctx, "/distance", map[string]string{
			"origin":      "Recife",
			"destination": "Olinda",
		})
		s.Require().NoError(err)
		s.Equal(http.StatusOK, resp.StatusCode)

		var out struct {
			OK bool `json:"ok"`
		}
		s.Require().NoError(resp.DecodeJSON("test", &out))
		s.True(out.OK)
	})
}

func (s *AdapterSuite) TestStatusClassification() {
	cases := []struct {
		status   int
		category ErrorCategory
	}{
		{http.StatusUnauthorized, ErrorAuthentication},
		{http.StatusForbidden, ErrorAuthentication},
		{http.StatusNotFound, ErrorNotFound},
		{http.StatusTooManyRequests, ErrorRateLimited},
		{http.StatusInternalServerError, ErrorProviderOutage},
		{http.StatusServiceUnavailable, ErrorProviderOutage},
		{http.StatusGatewayTimeout, ErrorTimeout},
		{http.StatusBadRequest, ErrorContractMismatch},
		{http.StatusConflict, ErrorContractMismatch},
	}
	for _, tc := range cases {
		s.Run(http.StatusText(tc.status), func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			_, err := s.newAdapter(srv.URL, time.Second).Get(context.Background(), "/x")
			s.Require().Error(err)
			s.Equal(tc.category, GetCategory(err))
		})
	}
}

func (s *AdapterSuite) TestPassStatuses() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"erro":true}`))
	}))
	defer srv.Close()

	resp, err := s.newAdapter(srv.URL, time.Second, http.StatusBadRequest).Get(context.Background(), "/x")
	s.Require().NoError(err)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal(`{"erro":true}`, string(resp.Body))
}

func (s *AdapterSuite) TestTimeout() {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	_, err := s.newAdapter(srv.URL, 50*time.Millisecond).Get(context.Background(), "/slow")
	s.Require().Error(err)
	s.Equal(ErrorTimeout, GetCategory(err))
	s.Less(time.Since(start), 2*time.Second)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.ClientFailuresTotal.WithLabelValues("test", "timeout")))
}

func (s *AdapterSuite) TestTransportFailure() {
	ctrl := gomock.NewController(s.T())
	doer := mocks.NewMockHTTPDoer(ctrl)
	doer.EXPECT().Do(gomock.Any()).Return(nil, errors.New("connection refused")).Times(1)

	a := New(Config{ID: "test", BaseURL: "http://unused", HTTPClient: doer}, WithLogger(s.logger), WithMetrics(s.metrics))
	_, err := a.Get(context.Background(), "/x")
	s.Require().Error(err)
	s.Equal(ErrorProviderOutage, GetCategory(err))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.ClientFailuresTotal.WithLabelValues("test", "provider_outage")))
}

func (s *AdapterSuite) TestFailureLogCarriesRequestID() {
	ctrl := gomock.NewController(s.T())
	doer := mocks.NewMockHTTPDoer(ctrl)
	doer.EXPECT().Do(gomock.Any()).Return(nil, errors.New("connection refused"))

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	a := New(Config{ID: "geo", BaseURL: "http://unused", HTTPClient: doer}, WithLogger(logger))

	ctx := requestcontext.WithRequestID(context.Background(), "req-77")
	_, err := a.Get(ctx, "/distance")
	s.Require().Error(err)
	s.Contains(buf.String(), `"request_id":"req-77"`)
	s.Contains(buf.String(), `"provider":"geo"`)

	buf.Reset()
	_ = a.Fail(ctx, NewProviderError(ErrorBadData, "geo", "duration out of range", nil))
	s.Contains(buf.String(), `"request_id":"req-77"`)
	s.Contains(buf.String(), `"category":"bad_data"`)
}

func (s *AdapterSuite) TestDecodeJSONBadData() {
	resp := &Response{StatusCode: http.StatusOK, Body: []byte("<html>")}
	var v map[string]any
	err := resp.DecodeJSON("test", &v)
	s.Require().Error(err)
	s.Equal(ErrorBadData, GetCategory(err))
}

func TestNew(t *testing.T) {
	t.Run("panics without provider id", func(t *testing.T) {
		assert.Panics(t, func() { New(Config{BaseURL: "http://x"}) })
	})

	t.Run("applies default timeout and trims base URL", func(t *testing.T) {
		a := New(Config{ID: "postal", BaseURL: "https://viacep.com.br/ws/"})
		require.Equal(t, DefaultTimeout, a.timeout)
		assert.True(t, strings.HasSuffix(a.baseURL, "/ws"))
		assert.Equal(t, "postal", a.ID())
	})
}

package devserver

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yildizm/smishguard/internal/api"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantLabel   api.Label
		wantReasons []string
	}{
		{
			name:        "plain message",
			text:        "내일 3시 회의 잊지 마세요",
			wantLabel:   api.LabelNormal,
			wantReasons: []string{"no suspicious wording or links found"},
		},
		{
			name:      "tax refund with shortener",
			text:      "[국세청] 환급금 확인 긴급 bit.ly/abc",
			wantLabel: api.LabelFraudulent,
			wantReasons: []string{
				"urgent or threatening wording",
				"prize, refund or payment bait",
				"impersonates a parcel, bank or public agency",
				"contains a shortened link",
			},
		},
		{
			name:      "credential phishing in english",
			text:      "URGENT: your bank account is locked, verify your password at http://x.top/login",
			wantLabel: api.LabelFraudulent,
			wantReasons: []string{
				"urgent or threatening wording",
				"impersonates a parcel, bank or public agency",
				"asks for credentials or personal data",
				"contains a link",
			},
		},
		{
			name:        "lone link",
			text:        "menu is at https://example.com/lunch",
			wantLabel:   api.LabelUnknown,
			wantReasons: []string{"contains a link"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text)
			assert.Equal(t, tt.wantLabel, got.Label)
			require.NotNil(t, got.Score)
			assert.GreaterOrEqual(t, *got.Score, 0.0)
			assert.LessOrEqual(t, *got.Score, 1.0)
			if diff := cmp.Diff(tt.wantReasons, got.Reasons); diff != "" {
				t.Errorf("reasons mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(Options{NewID: func() string { return "req_generated" }}).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestAnalyzeEndpoint(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantID     string
	}{
		{"echoes request id", "/api/v1/analyze", `{"text":"hello","request_id":"req_1","channel":"sms"}`, http.StatusOK, "req_1"},
		{"generates request id", "/api/v1/analyze", `{"text":"hello"}`, http.StatusOK, "req_generated"},
		{"service prefix", "/v1/analyze", `{"text":"hello","request_id":"req_2"}`, http.StatusOK, "req_2"},
		{"invalid json", "/api/v1/analyze", `{"text":`, http.StatusBadRequest, ""},
		{"blank text", "/api/v1/analyze", `{"text":"   "}`, http.StatusUnprocessableEntity, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := postJSON(t, srv.URL+tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantStatus != http.StatusOK {
				assert.NotEmpty(t, body["error"])
				return
			}
			assert.Equal(t, tt.wantID, body["request_id"])
			assert.Equal(t, true, body["success"])
			result, ok := body["result"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, string(api.LabelNormal), result["label"])
		})
	}
}

func TestAnalyzeMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/analyze")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestClientRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	client, err := api.New(&api.Config{BaseURL: srv.URL, Path: api.DefaultPath, UserAgent: "test"})
	require.NoError(t, err)

	resp, err := client.Analyze(context.Background(), &api.AnalysisRequest{
		Text:      "[택배] 주소 불일치로 배송 정지, 즉시 확인 bit.ly/parcel",
		RequestID: "req_rt",
		Channel:   "sms",
	})
	require.NoError(t, err)
	assert.Equal(t, "req_rt", resp.RequestID)
	assert.True(t, resp.Result.Label.IsFraudulent())
	assert.NotEmpty(t, resp.Result.Reasons)
	require.NotNil(t, resp.Result.Score)
}

func TestServeStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(Options{}).Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

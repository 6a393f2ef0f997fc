package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	client, err := New(&Config{BaseURL: serverURL, Path: DefaultPath, UserAgent: "smishguard/test", ClientID: "client-1"})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return client
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "nil config uses defaults",
			config:  nil,
			wantErr: false,
		},
		{
			name:    "base URL override",
			config:  &Config{BaseURL: "https://api.example.com/"},
			wantErr: false,
		},
		{
			name:    "falls back to origin",
			config:  &Config{Origin: "http://localhost:9000"},
			wantErr: false,
		},
		{
			name:    "no address at all",
			config:  &Config{},
			wantErr: true,
		},
		{
			name:    "invalid base URL",
			config:  &Config{BaseURL: "http://[::1]:namedport"},
			wantErr: true,
		},
		{
			name:    "unsupported scheme",
			config:  &Config{BaseURL: "ftp://example.com"},
			wantErr: true,
		},
		{
			name:    "negative timeout",
			config:  &Config{Origin: DefaultOrigin, Timeout: -time.Second},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && client == nil {
				t.Error("New() returned nil client without error")
			}
		})
	}
}

func TestConfigEndpoint(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{"same origin default", Config{Origin: DefaultOrigin}, "http://localhost:8000/api/v1/analyze"},
		{"override wins", Config{BaseURL: "https://guard.example.com", Origin: DefaultOrigin}, "https://guard.example.com/api/v1/analyze"},
		{"trailing slash trimmed", Config{BaseURL: "https://guard.example.com/"}, "https://guard.example.com/api/v1/analyze"},
		{"blank override ignored", Config{BaseURL: "   ", Origin: "http://127.0.0.1:8000"}, "http://127.0.0.1:8000/api/v1/analyze"},
		{"path without slash", Config{Origin: DefaultOrigin, Path: "v1/analyze"}, "http://localhost:8000/v1/analyze"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config.Endpoint(); got != tt.want {
				t.Errorf("Endpoint() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClient_Analyze(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/api/v1/analyze" {
			t.Errorf("Expected /api/v1/analyze, got %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected application/json content type, got %s", ct)
		}
		if cid := r.Header.Get("X-Client-Id"); cid != "client-1" {
			t.Errorf("Expected X-Client-Id client-1, got %s", cid)
		}

		body, _ := io.ReadAll(r.Body)
		var req AnalysisRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("Failed to unmarshal request: %v", err)
		}
		want := AnalysisRequest{Text: "free prize click here", RequestID: "r1", Channel: "sms"}
		if diff := cmp.Diff(want, req); diff != "" {
			t.Errorf("request body mismatch (-want +got):\n%s", diff)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"request_id":"r1","result":{"label":"스미싱","score":0.93,"reasons":["urgency language","suspicious link"],"raw":{"model":"v2"}}}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	resp, err := client.Analyze(context.Background(), &AnalysisRequest{
		Text:      "free prize click here",
		RequestID: "r1",
		Channel:   "sms",
	})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if resp.RequestID != "r1" {
		t.Errorf("Expected request id r1, got %s", resp.RequestID)
	}
	if !resp.Result.Label.IsFraudulent() {
		t.Errorf("Expected fraudulent label, got %s", resp.Result.Label)
	}
	if resp.Result.Score == nil || *resp.Result.Score != 0.93 {
		t.Errorf("Expected score 0.93, got %v", resp.Result.Score)
	}
	if diff := cmp.Diff([]string{"urgency language", "suspicious link"}, resp.Result.Reasons); diff != "" {
		t.Errorf("reasons mismatch (-want +got):\n%s", diff)
	}
	if string(resp.Result.Raw) != `{"model":"v2"}` {
		t.Errorf("Expected raw payload to be kept, got %s", resp.Result.Raw)
	}
}

func TestClient_AnalyzeMissingReasons(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"request_id":"r2","result":{"label":"정상"}}`)
	}))
	defer server.Close()

	resp, err := newTestClient(t, server.URL).Analyze(context.Background(), &AnalysisRequest{Text: "meeting at 3pm", RequestID: "r2", Channel: "sms"})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if resp.Result.Reasons == nil || len(resp.Result.Reasons) != 0 {
		t.Errorf("Expected empty, non-nil reasons, got %#v", resp.Result.Reasons)
	}
	if resp.Result.Score != nil {
		t.Errorf("Expected nil score, got %v", *resp.Result.Score)
	}
}

func TestClient_AnalyzeErrors(t *testing.T) {
	tests := []struct {
		name        string
		handler     http.HandlerFunc
		wantKind    ErrorKind
		wantMessage string
		wantStatus  int
	}{
		{
			name: "server error with body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = io.WriteString(w, "model backend unavailable\n")
			},
			wantKind:    KindStatus,
			wantMessage: "API 500: model backend unavailable",
			wantStatus:  http.StatusInternalServerError,
		},
		{
			name: "status without body uses status text",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantKind:    KindStatus,
			wantMessage: "API 502: Bad Gateway",
			wantStatus:  http.StatusBadGateway,
		},
		{
			name: "validation error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				_, _ = io.WriteString(w, `{"detail":"text required"}`)
			},
			wantKind:    KindStatus,
			wantMessage: `API 422: {"detail":"text required"}`,
			wantStatus:  http.StatusUnprocessableEntity,
		},
		{
			name: "body is not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, "<html>gateway</html>")
			},
			wantKind:    KindDecode,
			wantMessage: "malformed response",
		},
		{
			name: "missing result",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, `{"request_id":"r1"}`)
			},
			wantKind:    KindDecode,
			wantMessage: "malformed response: missing result",
		},
		{
			name: "missing label",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, `{"request_id":"r1","result":{"reasons":[]}}`)
			},
			wantKind:    KindDecode,
			wantMessage: "malformed response: missing result label",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := newTestClient(t, server.URL).Analyze(context.Background(), &AnalysisRequest{Text: "x", RequestID: "r1", Channel: "sms"})
			if err == nil {
				t.Fatal("Expected error, got nil")
			}

			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("Expected *Error, got %T", err)
			}
			if apiErr.Kind != tt.wantKind {
				t.Errorf("Expected kind %s, got %s", tt.wantKind, apiErr.Kind)
			}
			if !strings.HasPrefix(err.Error(), tt.wantMessage) {
				t.Errorf("Expected message prefix %q, got %q", tt.wantMessage, err.Error())
			}
			if apiErr.StatusCode != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, apiErr.StatusCode)
			}
		})
	}
}

func TestClient_AnalyzeTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient(t, url).Analyze(context.Background(), &AnalysisRequest{Text: "x", RequestID: "r1", Channel: "sms"})
	if err == nil {
		t.Fatal("Expected transport error, got nil")
	}
	if !errors.Is(err, ErrTransport) {
		t.Errorf("Expected transport error, got %v", err)
	}
	if KindOf(err) != KindTransport {
		t.Errorf("Expected KindOf transport, got %s", KindOf(err))
	}
	if err.Error() == "" {
		t.Error("Expected non-empty message")
	}
}

func TestClient_AnalyzeNilRequest(t *testing.T) {
	client, err := New(nil)
	if err != nil {
		t.Fatalf("New(nil) error = %v", err)
	}
	if _, err := client.Analyze(context.Background(), nil); KindOf(err) != KindRequest {
		t.Errorf("Expected request error, got %v", err)
	}
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client, err := New(&Config{BaseURL: server.URL, Timeout: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = client.Analyze(context.Background(), &AnalysisRequest{Text: "x", RequestID: "r1", Channel: "sms"})
	if KindOf(err) != KindTransport {
		t.Errorf("Expected transport error on timeout, got %v", err)
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		label      Label
		fraudulent bool
		known      bool
		english    string
	}{
		{LabelFraudulent, true, true, "fraudulent"},
		{LabelNormal, false, true, "normal"},
		{LabelUnknown, false, true, "unknown"},
		{Label("phishing"), false, false, "phishing"},
	}

	for _, tt := range tests {
		t.Run(string(tt.label), func(t *testing.T) {
			if got := tt.label.IsFraudulent(); got != tt.fraudulent {
				t.Errorf("IsFraudulent() = %v, want %v", got, tt.fraudulent)
			}
			if got := tt.label.Known(); got != tt.known {
				t.Errorf("Known() = %v, want %v", got, tt.known)
			}
			if got := tt.label.English(); got != tt.english {
				t.Errorf("English() = %q, want %q", got, tt.english)
			}
		})
	}
}

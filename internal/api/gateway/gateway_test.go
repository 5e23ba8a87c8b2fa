package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	grpcapi "notes-backend/internal/api/grpc"
	"notes-backend/internal/config"
	"notes-backend/internal/repository/memory"
	"notes-backend/internal/service/notes"
	notesv1 "notes-backend/pkg/api/notes/v1"
)

type testGateway struct {
	url    string
	events *notes.EventService
}

func startGateway(t *testing.T, tune func(*config.Config)) *testGateway {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	events := notes.NewEventService()
	service := notes.NewNoteService(memory.NewRepository(), events, zerolog.Nop())
	grpcServer := grpcapi.NewServer(grpcapi.NewHandler(ctx, service, zerolog.Nop()), zerolog.Nop())

	lis := bufconn.Listen(1 << 20)
	go func() {
		_ = grpcServer.Serve(lis)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.SetDefaults()
	cfg.Gateway.RateLimitRPS = 1000
	cfg.Gateway.RateLimitBurst = 1000
	if tune != nil {
		tune(cfg)
	}

	handler, err := NewHandler(notesv1.NewNotesServiceClient(conn), cfg, zerolog.Nop(), nil)
	require.NoError(t, err)
	httpServer := httptest.NewServer(handler)

	t.Cleanup(func() {
		cancel()
		httpServer.Close()
		_ = conn.Close()
		grpcServer.Stop()
	})

	return &testGateway{url: httpServer.URL, events: events}
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()

	var payload *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewReader(data)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, payload)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func TestGateway_Health(t *testing.T) {
	gw := startGateway(t, nil)

	resp, body := doJSON(t, http.MethodGet, gw.url+"/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","service":"Notes Backend API","version":"1.0.0"}`, string(body))
}

func TestGateway_Usage(t *testing.T) {
	gw := startGateway(t, nil)

	resp, body := doJSON(t, http.MethodGet, gw.url+"/docs/usage", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var usage usageResponse
	require.NoError(t, json.Unmarshal(body, &usage))
	assert.Equal(t, "Ocean Professional", usage.Theme.Name)
	assert.Equal(t, "GET /notes", usage.RestEndpoints["list"])
	assert.Equal(t, "/ws/notes", usage.Realtime.WebsocketEndpoint)
}

func TestGateway_CRUD(t *testing.T) {
	gw := startGateway(t, nil)

	// Пустой список - это [], а не null
	resp, body := doJSON(t, http.MethodGet, gw.url+"/notes", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))

	resp, body = doJSON(t, http.MethodPost, gw.url+"/notes", map[string]any{
		"title": "Groceries", "content": "milk, eggs", "tags": []string{"home"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	assert.Equal(t, "/notes/1", resp.Header.Get("Location"))

	var created notesv1.Note
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "1", created.Id)
	assert.Equal(t, []string{"home"}, created.Tags)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	resp, body = doJSON(t, http.MethodGet, gw.url+"/notes/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got notesv1.Note
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, created, got)

	resp, body = doJSON(t, http.MethodPut, gw.url+"/notes/1", map[string]any{
		"title": "Groceries", "content": "milk, eggs, bread",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var updated notesv1.Note
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "milk, eggs, bread", updated.Content)
	assert.Empty(t, updated.Tags, "update replaces tags")
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	resp, body = doJSON(t, http.MethodGet, gw.url+"/notes", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []notesv1.Note
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	assert.Equal(t, updated, list[0])

	resp, _ = doJSON(t, http.MethodDelete, gw.url+"/notes/1", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodDelete, gw.url+"/notes/1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGateway_Errors(t *testing.T) {
	gw := startGateway(t, nil)

	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		code    int
		message string
	}{
		{"get missing", http.MethodGet, "/notes/999", "", http.StatusNotFound, `note \"999\" not found`},
		{"update missing", http.MethodPut, "/notes/999", `{"title":"t"}`, http.StatusNotFound, "not found"},
		{"blank title", http.MethodPost, "/notes", `{"title":"   ","content":"x"}`, http.StatusBadRequest, "title cannot be empty"},
		{"long title", http.MethodPost, "/notes", `{"title":"` + strings.Repeat("a", 201) + `"}`, http.StatusBadRequest, "title must be at most 200 characters"},
		{"broken json", http.MethodPost, "/notes", `{"title":`, http.StatusBadRequest, "invalid request body"},
		{"empty body", http.MethodPost, "/notes", ``, http.StatusBadRequest, "request body is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, gw.url+tt.path, strings.NewReader(tt.body))
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			var buf bytes.Buffer
			_, _ = buf.ReadFrom(resp.Body)

			assert.Equal(t, tt.code, resp.StatusCode, buf.String())
			assert.Contains(t, buf.String(), tt.message)
		})
	}
}

func TestGateway_RateLimit(t *testing.T) {
	gw := startGateway(t, func(cfg *config.Config) {
		cfg.Gateway.RateLimitRPS = 1
		cfg.Gateway.RateLimitBurst = 1
	})

	resp, _ := doJSON(t, http.MethodGet, gw.url+"/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, gw.url+"/", nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestGateway_CORS(t *testing.T) {
	gw := startGateway(t, func(cfg *config.Config) {
		cfg.Gateway.CORSAllowedOrigins = "http://localhost:3000, http://example.com"
	})

	req, err := http.NewRequest(http.MethodGet, gw.url+"/notes", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "http://example.com", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestGateway_WebSocketEvents(t *testing.T) {
	gw := startGateway(t, nil)

	wsURL := "ws" + strings.TrimPrefix(gw.url, "http") + "/ws/notes"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return gw.events.SubscriberCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	resp, _ := doJSON(t, http.MethodPost, gw.url+"/notes", map[string]any{"title": "Groceries", "content": "milk"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev notesv1.NoteEvent
	require.NoError(t, json.Unmarshal(message, &ev))
	assert.Equal(t, "created", ev.Type)
	assert.Equal(t, "Groceries", ev.Note.Title)
}

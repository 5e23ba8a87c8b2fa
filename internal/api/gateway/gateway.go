package gateway

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/tmc/grpc-websocket-proxy/wsproxy"

	"notes-backend/internal/api/http/middleware"
	"notes-backend/internal/config"
	notesv1 "notes-backend/pkg/api/notes/v1"
)

// Gateway HTTP/JSON фасад над gRPC клиентом NotesService
type Gateway struct {
	client notesv1.NotesServiceClient
	app    *config.ConfigApp
	gwMux  *runtime.ServeMux
	log    zerolog.Logger
}

// NewHandler собирает HTTP обработчик gateway.
// Если mux == nil, создается новый http.ServeMux, иначе используется переданный
// (в нем уже могут быть зарегистрированы, например, маршруты Swagger UI).
func NewHandler(client notesv1.NotesServiceClient, cfg *config.Config, log zerolog.Logger, mux *http.ServeMux) (http.Handler, error) {
	if mux == nil {
		mux = http.NewServeMux()
	}
	log = log.With().Str("component", "gateway").Logger()

	g := &Gateway{
		client: client,
		app:    cfg.App,
		gwMux:  runtime.NewServeMux(),
		log:    log,
	}
	if err := g.registerRoutes(); err != nil {
		return nil, fmt.Errorf("failed to register gateway routes: %w", err)
	}

	// Health check только на точном пути "/"
	mux.HandleFunc("GET /{$}", g.health)
	// Все остальные пути обрабатываются Gateway.
	// Пути /swagger, не обработанные Swagger handler, отдают 404.
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/swagger") {
			http.NotFound(w, r)
			return
		}
		g.gwMux.ServeHTTP(w, r)
	}))

	// Применение middleware (в обратном порядке выполнения):
	// 1. WebSocket Proxy (самый внешний слой, корректно обрабатывает upgrade)
	// 2. CORS
	// 3. Logging
	// 4. Rate Limiting
	var handler http.Handler = mux
	handler = middleware.RateLimit(handler, cfg.Gateway.RateLimitRPS, cfg.Gateway.RateLimitBurst, log)
	handler = middleware.Logging(handler, log)
	handler = setupCORS(cfg.Gateway).Handler(handler)
	handler = wsproxy.WebsocketProxy(handler, wsproxy.WithLogger(wsLogger{log}))

	log.Info().
		Str("cors_origins", cfg.Gateway.CORSAllowedOrigins).
		Int("rate_limit_rps", cfg.Gateway.RateLimitRPS).
		Msg("HTTP Gateway configured, WebSocket events at /ws/notes")
	return handler, nil
}

func (g *Gateway) registerRoutes() error {
	routes := []struct {
		method  string
		pattern string
		handler runtime.HandlerFunc
	}{
		{http.MethodGet, "/docs/usage", g.usage},
		{http.MethodGet, "/notes", g.listNotes},
		{http.MethodPost, "/notes", g.createNote},
		{http.MethodGet, "/notes/{id}", g.getNote},
		{http.MethodPut, "/notes/{id}", g.updateNote},
		{http.MethodDelete, "/notes/{id}", g.deleteNote},
		{http.MethodGet, "/ws/notes", g.streamEvents},
	}

	for _, route := range routes {
		if err := g.gwMux.HandlePath(route.method, route.pattern, route.handler); err != nil {
			return fmt.Errorf("%s %s: %w", route.method, route.pattern, err)
		}
	}
	return nil
}

// setupCORS настраивает CORS middleware используя конфигурацию
func setupCORS(cfg *config.ConfigGateway) *cors.Cors {
	origins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Content-Type",
			"Authorization",
			"X-Requested-With",
		},
		AllowCredentials: true,
		MaxAge:           cfg.CORSMaxAge,
	})
}

// wsLogger адаптер zerolog под интерфейс логгера wsproxy
type wsLogger struct {
	log zerolog.Logger
}

func (l wsLogger) Warnln(args ...any) {
	l.log.Warn().Msg(strings.TrimSpace(fmt.Sprintln(args...)))
}

func (l wsLogger) Debugln(args ...any) {
	l.log.Debug().Msg(strings.TrimSpace(fmt.Sprintln(args...)))
}

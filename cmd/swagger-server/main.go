package main

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"notes-backend/internal/api/swagger"
	"notes-backend/internal/config"
	"notes-backend/internal/logger"
	notesv1 "notes-backend/pkg/api/notes/v1"
)

// Отдельный сервер документации: Swagger UI без gRPC и хранилища
func main() {
	_ = config.LoadDotEnv()

	cfg, err := config.InitConfig[config.Config]("config.yml")
	if err != nil {
		cfg = &config.Config{}
	}
	cfg.SetDefaults()

	log := logger.New(cfg.Logger, os.Stdout).With().Str("component", "swagger-server").Logger()
	if err != nil {
		log.Warn().Err(err).Msg("config.yml not loaded, using defaults")
	}

	mux := http.NewServeMux()
	if err := swagger.ServeSwagger(mux, notesv1.SwaggerSpecs, log); err != nil {
		log.Fatal().Err(err).Msg("failed to serve swagger")
	}

	// Редирект с корня на Swagger UI
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	addr := "0.0.0.0:" + strconv.Itoa(cfg.Swagger.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info().
		Str("ui", "http://localhost:"+strconv.Itoa(cfg.Swagger.Port)+"/swagger/").
		Str("json", "http://localhost:"+strconv.Itoa(cfg.Swagger.Port)+"/swagger.json").
		Msg("Swagger UI server started")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("swagger server failed")
	}
}

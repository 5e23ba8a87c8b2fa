package swagger

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

//go:embed embed/*
var swaggerContent embed.FS

// SpecFile имя основного OpenAPI документа в swaggerSpecs
const SpecFile = "notes.swagger.json"

// ServeSwagger добавляет маршруты для Swagger UI и swagger.json в указанный mux.
// swaggerSpecs - файловая система со swagger.json файлами (например, notesv1.SwaggerSpecs).
//
// Создает следующие маршруты:
// - GET /swagger/ - Swagger UI (index.html)
// - GET /swagger.json - основной OpenAPI документ
// - GET /swagger/specs/ - все документы из swaggerSpecs
func ServeSwagger(mux *http.ServeMux, swaggerSpecs fs.FS, log zerolog.Logger) error {
	swaggerUI, err := fs.Sub(swaggerContent, "embed")
	if err != nil {
		return fmt.Errorf("failed to get embedded Swagger UI files: %w", err)
	}

	spec, err := findSpec(swaggerSpecs)
	if err != nil {
		return err
	}

	// StripPrefix убирает /swagger из пути перед поиском файла
	swaggerStaticsHandler := http.StripPrefix("/swagger", http.FileServer(http.FS(swaggerUI)))
	mux.Handle("/swagger/", swaggerStaticsHandler)
	mux.Handle("/swagger/specs/", http.StripPrefix("/swagger/specs", http.FileServer(http.FS(swaggerSpecs))))

	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("/swagger.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write(spec)
	})

	log.Info().Msg("Swagger UI enabled at /swagger/, JSON at /swagger.json")
	return nil
}

// findSpec ищет SpecFile, иначе первый .json файл в корне swaggerSpecs
func findSpec(swaggerSpecs fs.FS) ([]byte, error) {
	if data, err := fs.ReadFile(swaggerSpecs, SpecFile); err == nil {
		return data, nil
	}

	entries, err := fs.ReadDir(swaggerSpecs, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read swagger specs: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			return fs.ReadFile(swaggerSpecs, entry.Name())
		}
	}
	return nil, fmt.Errorf("swagger JSON not found")
}

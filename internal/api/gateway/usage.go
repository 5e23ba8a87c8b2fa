package gateway

import (
	"net/http"
)

// Тема документации Ocean Professional
const (
	themeName      = "Ocean Professional"
	themePrimary   = "#2563EB"
	themeSecondary = "#F59E0B"
)

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

type usageTheme struct {
	Name      string `json:"name"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

type usageRealtime struct {
	Available         bool     `json:"available"`
	WebsocketEndpoint string   `json:"websocket_endpoint"`
	Events            []string `json:"events"`
	Note              string   `json:"note"`
}

type usageResponse struct {
	Theme         usageTheme        `json:"theme"`
	RestEndpoints map[string]string `json:"rest_endpoints"`
	Realtime      usageRealtime     `json:"realtime"`
	Docs          map[string]string `json:"docs"`
}

func (g *Gateway) health(w http.ResponseWriter, _ *http.Request) {
	g.writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Service: g.app.Name,
		Version: g.app.Version,
	})
}

func (g *Gateway) usage(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
	g.writeJSON(w, http.StatusOK, usageResponse{
		Theme: usageTheme{
			Name:      themeName,
			Primary:   themePrimary,
			Secondary: themeSecondary,
		},
		RestEndpoints: map[string]string{
			"list":   "GET /notes",
			"create": "POST /notes",
			"get":    "GET /notes/{note_id}",
			"update": "PUT /notes/{note_id}",
			"delete": "DELETE /notes/{note_id}",
		},
		Realtime: usageRealtime{
			Available:         true,
			WebsocketEndpoint: "/ws/notes",
			Events:            []string{"created", "updated", "deleted"},
			Note:              "Connect with a WebSocket client to receive note events as JSON messages.",
		},
		Docs: map[string]string{
			"openapi": "/swagger.json",
			"ui":      "/swagger/",
		},
	})
}

package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerGameLogRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/game-logs", RequireAuth(verifier, http.HandlerFunc(handler.CreateGameLog)))
	mux.Handle("POST /v1/game-logs/validate", OptionalAuth(verifier, http.HandlerFunc(handler.ValidateGameLog)))
	mux.Handle("GET /v1/game-logs", RequireAuth(verifier, http.HandlerFunc(handler.ListMyGameLogs)))
	mux.Handle("GET /v1/game-logs/{logID}", OptionalAuth(verifier, http.HandlerFunc(handler.GetGameLog)))
	mux.Handle("PATCH /v1/game-logs/{logID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateGameLog)))
	mux.Handle("DELETE /v1/game-logs/{logID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteGameLog)))
}

func registerStatsRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/stats", OptionalAuth(verifier, http.HandlerFunc(handler.GetStats)))
}

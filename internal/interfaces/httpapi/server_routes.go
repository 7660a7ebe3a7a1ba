package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /v1/system/health", handler.GetSystemHealth)
	mux.HandleFunc("GET /v1/system/providers", handler.ListProviderHealth)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches", handler.ListBestMatches)
	mux.HandleFunc("GET /v1/matches/best", handler.GetBestMatch)
	mux.HandleFunc("GET /v1/matches/top", handler.ListTopMatchesWithDetails)
	mux.HandleFunc("GET /v1/matches/analysis", handler.GetCompleteAnalysis)
	mux.HandleFunc("GET /v1/content-types", handler.ListContentTypes)
}

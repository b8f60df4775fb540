package api

import (
	"net/http"
)

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("GET /api/records", CorsMiddleware(http.HandlerFunc(s.HandleRecords)))
	mux.Handle("OPTIONS /api/records", CorsMiddleware(http.HandlerFunc(s.HandleRecords)))
	mux.HandleFunc("GET /health", s.HandleHealth)
}

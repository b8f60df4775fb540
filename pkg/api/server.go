package api

import (
	"encoding/json"
	"net/http"

	"github.com/rubiojr/apodview/pkg/log"
	"github.com/rubiojr/apodview/pkg/source"
)

// SourceFunc returns the record source in effect for a request.
type SourceFunc func() source.Source

// CounterFunc reports the number of live page sessions.
type CounterFunc func() int

type Server struct {
	source   SourceFunc
	sessions CounterFunc
	log      *log.Logger
}

func NewServer(src SourceFunc, sessions CounterFunc) *Server {
	if sessions == nil {
		sessions = func() int { return 0 }
	}
	return &Server{
		source:   src,
		sessions: sessions,
		log:      log.For("api"),
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Errorf("Error encoding JSON response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, error, message string) {
	response := ErrorResponse{
		Error:   error,
		Message: message,
	}
	s.writeJSON(w, status, response)
}

func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

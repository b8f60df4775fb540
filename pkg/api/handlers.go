package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rubiojr/apodview/pkg/apod"
	"github.com/rubiojr/apodview/pkg/loader"
	"github.com/rubiojr/apodview/pkg/version"
)

// HandleRecords returns the collection sorted newest first. An optional
// limit query parameter truncates the list.
func (s *Server) HandleRecords(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, http.StatusBadRequest, "Invalid limit", "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	src := s.source()
	records, err := loader.Retrieve(r.Context(), src)
	if err != nil {
		s.log.Errorf("fetching records: %v", err)
		s.writeError(w, http.StatusBadGateway, "Failed to fetch records", err.Error())
		return
	}

	records = apod.SortNewestFirst(records)
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}

	s.writeJSON(w, http.StatusOK, ListRecordsResponse{
		Source:  src.Name(),
		Records: records,
		Count:   len(records),
	})
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	health := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   version.APIVersion(),
		Sessions:  s.sessions(),
	}

	s.writeJSON(w, http.StatusOK, health)
}

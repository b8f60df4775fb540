package api

import (
	"time"

	"github.com/rubiojr/apodview/pkg/apod"
)

type ListRecordsResponse struct {
	Source  string        `json:"source"`
	Records []apod.Record `json:"records"`
	Count   int           `json:"count"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Sessions  int       `json:"sessions"`
}

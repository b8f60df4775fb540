package integration_tests

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rubiojr/apodview/pkg/apod"
	"github.com/rubiojr/apodview/pkg/config"
)

// CreateTestConfig returns a configuration reading records from dataFile.
func CreateTestConfig(dataFile string) *config.Config {
	cfg := config.GetDefaultConfig()
	cfg.Source.URL = dataFile
	cfg.Source.Timeout = config.Duration{Duration: 5 * time.Second}
	cfg.Display.Facts = []string{"Integration tests are out of this world."}
	return cfg
}

// WriteRecordsFile stores records as a JSON array in dir/name.
func WriteRecordsFile(t *testing.T, dir, name string, records []apod.Record) string {
	t.Helper()
	data, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("marshal records: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write records: %v", err)
	}
	return path
}

// GetStandardRecords returns a small collection covering every media type.
func GetStandardRecords() []apod.Record {
	return []apod.Record{
		{Title: "Orion Nebula", Date: "2024-01-10", MediaType: "image", URL: "https://x/orion.jpg", HDURL: "https://x/orion_hd.jpg", Explanation: "A stellar nursery."},
		{Title: "Solar Flare", Date: "2024-01-12", MediaType: "video", URL: "https://www.youtube.com/embed/flare"},
		{Title: "Mystery", Date: "2024-01-11", MediaType: "other", URL: "https://x/mystery"},
	}
}

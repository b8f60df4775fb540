package apod

import (
	"sort"
	"strings"
)

// MediaType classifies the primary content of a Record.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
	MediaOther MediaType = "other"
)

// ParseMediaType maps the raw media_type field to a MediaType.
// Anything that is not "image" or "video" is MediaOther.
func ParseMediaType(raw string) MediaType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(MediaImage):
		return MediaImage
	case string(MediaVideo):
		return MediaVideo
	default:
		return MediaOther
	}
}

const (
	// DefaultTitle is shown when a record has no title.
	DefaultTitle = "Untitled"
	// DefaultAlt is the alternative text for media of untitled records.
	DefaultAlt = "APOD image"
)

// Record is one astronomy picture of the day entry.
//
// Optional fields use the empty string for "absent":
//   - Title: DisplayTitle falls back to "Untitled"
//   - HDURL: detail views fall back to URL
//   - ThumbnailURL: video thumbnails fall back to URL
//   - Copyright: Credit returns "" and the credit line is omitted
type Record struct {
	Title        string `json:"title,omitempty"`
	Date         string `json:"date"`
	MediaType    string `json:"media_type"`
	URL          string `json:"url,omitempty"`
	HDURL        string `json:"hdurl,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Explanation  string `json:"explanation,omitempty"`
	Copyright    string `json:"copyright,omitempty"`
}

// Kind returns the parsed media type of the record.
func (r Record) Kind() MediaType {
	return ParseMediaType(r.MediaType)
}

// DisplayTitle returns the title or DefaultTitle when empty.
func (r Record) DisplayTitle() string {
	if strings.TrimSpace(r.Title) == "" {
		return DefaultTitle
	}
	return r.Title
}

// AltText returns the alternative text used for the record's media.
func (r Record) AltText() string {
	if strings.TrimSpace(r.Title) == "" {
		return DefaultAlt
	}
	return r.Title
}

// Credit returns the attribution line, or "" when the record has none.
func (r Record) Credit() string {
	c := strings.TrimSpace(r.Copyright)
	if c == "" {
		return ""
	}
	return "Credit: " + c
}

// BestImageURL returns the highest resolution locator available.
func (r Record) BestImageURL() string {
	if r.HDURL != "" {
		return r.HDURL
	}
	return r.URL
}

// IsEmbeddable reports whether the record's URL points at a video host that
// can be embedded in a player frame. Only YouTube is recognized, anything
// else is shown as an outbound link.
func (r Record) IsEmbeddable() bool {
	return r.URL != "" && strings.Contains(r.URL, "youtube")
}

// SortNewestFirst orders records by date descending using plain string
// comparison. The sort is stable so records sharing a date keep their
// fetch order. The slice is sorted in place and returned.
func SortNewestFirst(records []Record) []Record {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})
	return records
}

// Sorted returns a newest-first copy of records, leaving the input untouched.
func Sorted(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	return SortNewestFirst(out)
}

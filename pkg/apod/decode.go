package apod

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrMalformed is returned when a payload is not a JSON array of records.
var ErrMalformed = errors.New("malformed record payload")

// Decode reads a JSON array of records from r.
//
// A top-level null, object or scalar is rejected, as is trailing data after
// the array. An empty array is valid and yields an empty, non-nil slice.
func Decode(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("%w: expected array, got %v", ErrMalformed, tok)
	}

	records := make([]Record, 0)
	for dec.More() {
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrMalformed, len(records), err)
		}
		records = append(records, rec)
	}

	// closing bracket
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after array", ErrMalformed)
	}

	return records, nil
}

// DecodeBytes is Decode for an in-memory payload.
func DecodeBytes(data []byte) ([]Record, error) {
	return Decode(bytes.NewReader(data))
}

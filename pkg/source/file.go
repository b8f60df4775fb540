package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/rubiojr/apodview/pkg/apod"
)

// File reads the collection from a local JSON file. Files ending in .zst
// are zstd-compressed.
type File struct {
	path string
}

// NewFile creates a file source.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Name() string { return f.path }

// Fetch reads and decodes the file.
func (f *File) Fetch(ctx context.Context) ([]apod.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fh, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", f.path, err)
	}
	defer fh.Close()

	var r io.Reader = fh
	if strings.HasSuffix(f.path, ".zst") {
		dec, err := zstd.NewReader(fh)
		if err != nil {
			return nil, fmt.Errorf("creating zstd decoder: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	records, err := apod.Decode(io.LimitReader(r, maxPayload))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", f.path, err)
	}
	return records, nil
}

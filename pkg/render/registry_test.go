package render

import (
	"testing"

	"github.com/rubiojr/apodview/pkg/apod"
)

func TestThumbnailByMediaType(t *testing.T) {
	reg := GetGlobalRegistry()

	tests := []struct {
		name string
		rec  apod.Record
		want Thumbnail
	}{
		{
			name: "image uses url with lazy hint",
			rec:  apod.Record{Title: "M42", MediaType: "image", URL: "https://x/m42.jpg", HDURL: "https://x/m42_hd.jpg"},
			want: Thumbnail{Src: "https://x/m42.jpg", Alt: "M42", Lazy: true},
		},
		{
			name: "video prefers thumbnail",
			rec:  apod.Record{MediaType: "video", URL: "https://www.youtube.com/embed/a", ThumbnailURL: "https://img/t.jpg"},
			want: Thumbnail{Src: "https://img/t.jpg", Alt: "APOD image", Lazy: true, Play: true},
		},
		{
			name: "video falls back to url",
			rec:  apod.Record{MediaType: "video", URL: "https://example.com/v.mp4"},
			want: Thumbnail{Src: "https://example.com/v.mp4", Alt: "APOD image", Lazy: true, Play: true},
		},
		{
			name: "video without locators",
			rec:  apod.Record{MediaType: "video"},
			want: Thumbnail{Src: "", Alt: "APOD image", Lazy: true, Play: true},
		},
		{
			name: "other uses url without hints",
			rec:  apod.Record{MediaType: "other", URL: "https://x/file.swf"},
			want: Thumbnail{Src: "https://x/file.swf", Alt: "APOD image"},
		},
		{
			name: "unknown type with no url",
			rec:  apod.Record{MediaType: "interactive"},
			want: Thumbnail{Alt: "APOD image"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reg.Thumbnail(tt.rec); got != tt.want {
				t.Fatalf("Thumbnail = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDetailMedia(t *testing.T) {
	reg := GetGlobalRegistry()

	img := reg.Detail(apod.Record{MediaType: "image", URL: "u", HDURL: "hd"})
	if img.Kind != MediaImage || img.Src != "hd" {
		t.Errorf("image detail = %+v", img)
	}
	img = reg.Detail(apod.Record{MediaType: "image", URL: "u"})
	if img.Src != "u" {
		t.Errorf("image without hdurl should use url, got %q", img.Src)
	}

	embed := reg.Detail(apod.Record{MediaType: "video", URL: "https://www.youtube.com/embed/xyz"})
	if embed.Kind != MediaEmbed {
		t.Fatalf("expected embed, got %v", embed.Kind)
	}
	if embed.Allow != EmbedAllow || !embed.AllowFullscreen {
		t.Errorf("embed permissions missing: %+v", embed)
	}

	link := reg.Detail(apod.Record{MediaType: "video", URL: "https://vimeo.com/1"})
	if link.Kind != MediaLink {
		t.Fatalf("expected link, got %v", link.Kind)
	}
	if link.Target != "_blank" || link.Rel != "noopener noreferrer" {
		t.Errorf("link isolation attributes missing: %+v", link)
	}

	if m := reg.Detail(apod.Record{MediaType: "video"}); !m.IsZero() {
		t.Errorf("video without url should have no media, got %+v", m)
	}
	if m := reg.Detail(apod.Record{MediaType: "other", URL: "x"}); !m.IsZero() {
		t.Errorf("other media type should have no media, got %+v", m)
	}
}

func TestMediaTypes(t *testing.T) {
	types := GetGlobalRegistry().MediaTypes()
	if len(types) != 2 || types[0] != apod.MediaImage || types[1] != apod.MediaVideo {
		t.Fatalf("MediaTypes = %v", types)
	}
}

type stubRenderer struct{ DefaultRenderer }

func (stubRenderer) CanRender(rec apod.Record) bool { return rec.MediaType == "stub" }
func (stubRenderer) Thumbnail(apod.Record) Thumbnail { return Thumbnail{Src: "stub"} }

func TestRegistryOrderAndFallback(t *testing.T) {
	reg := NewRegistry()
	reg.Register(stubRenderer{})

	if got := reg.Thumbnail(apod.Record{MediaType: "stub"}); got.Src != "stub" {
		t.Fatalf("expected stub renderer, got %+v", got)
	}
	// No image renderer registered: fallback applies.
	if got := reg.Thumbnail(apod.Record{MediaType: "image", URL: "u"}); got.Lazy {
		t.Fatalf("fallback should not set lazy hint: %+v", got)
	}

	reg.SetFallback(nil)
	if got := reg.Thumbnail(apod.Record{MediaType: "image", Title: "t"}); got.Alt != "t" || got.Src != "" {
		t.Fatalf("nil fallback thumbnail = %+v", got)
	}
}

package render

import "github.com/rubiojr/apodview/pkg/apod"

func init() {
	RegisterRenderer(&ImageRenderer{})
	RegisterRenderer(&VideoRenderer{})
}

// ImageRenderer shows pictures: the regular URL on cards and the HD URL,
// when present, in the overlay.
type ImageRenderer struct{}

func (ImageRenderer) MediaType() apod.MediaType { return apod.MediaImage }

func (ImageRenderer) CanRender(rec apod.Record) bool {
	return rec.Kind() == apod.MediaImage
}

func (ImageRenderer) Thumbnail(rec apod.Record) Thumbnail {
	return Thumbnail{Src: rec.URL, Alt: rec.AltText(), Lazy: true}
}

func (ImageRenderer) Detail(rec apod.Record) Media {
	return Media{Kind: MediaImage, Src: rec.BestImageURL(), Alt: rec.AltText()}
}

// VideoRenderer shows videos: a thumbnail with a play affordance on cards,
// and an embedded player or an outbound link in the overlay.
type VideoRenderer struct{}

func (VideoRenderer) MediaType() apod.MediaType { return apod.MediaVideo }

func (VideoRenderer) CanRender(rec apod.Record) bool {
	return rec.Kind() == apod.MediaVideo
}

func (VideoRenderer) Thumbnail(rec apod.Record) Thumbnail {
	src := rec.ThumbnailURL
	if src == "" {
		src = rec.URL
	}
	return Thumbnail{Src: src, Alt: rec.AltText(), Lazy: true, Play: true}
}

func (VideoRenderer) Detail(rec apod.Record) Media {
	if rec.URL == "" {
		return Media{}
	}
	if rec.IsEmbeddable() {
		return Media{
			Kind:            MediaEmbed,
			Src:             rec.URL,
			Alt:             rec.AltText(),
			Allow:           EmbedAllow,
			AllowFullscreen: true,
			Width:           "100%",
			Height:          "480",
		}
	}
	return Media{
		Kind:   MediaLink,
		Src:    rec.URL,
		Alt:    rec.AltText(),
		Target: "_blank",
		Rel:    "noopener noreferrer",
		Label:  "Open video",
	}
}

// DefaultRenderer handles every other media type: the URL as a plain
// thumbnail and nothing in the overlay.
type DefaultRenderer struct{}

func (DefaultRenderer) MediaType() apod.MediaType { return "" }

func (DefaultRenderer) CanRender(apod.Record) bool { return true }

func (DefaultRenderer) Thumbnail(rec apod.Record) Thumbnail {
	return Thumbnail{Src: rec.URL, Alt: rec.AltText()}
}

func (DefaultRenderer) Detail(apod.Record) Media { return Media{} }

package render

// Thumbnail describes the small picture shown on a gallery card.
type Thumbnail struct {
	Src  string
	Alt  string
	Lazy bool // lazy-loading hint
	Play bool // overlay a play affordance
}

// MediaKind identifies what the detail view shows for a record.
type MediaKind int

const (
	MediaNone MediaKind = iota
	MediaImage
	MediaEmbed
	MediaLink
)

func (k MediaKind) String() string {
	switch k {
	case MediaImage:
		return "image"
	case MediaEmbed:
		return "embed"
	case MediaLink:
		return "link"
	default:
		return "none"
	}
}

// EmbedAllow is the permission list granted to embedded video players.
const EmbedAllow = "accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture"

// Media is the large media element of the detail overlay. The zero value is
// "no media".
type Media struct {
	Kind MediaKind
	Src  string
	Alt  string

	// Embed only.
	Allow           string
	AllowFullscreen bool
	Width           string
	Height          string

	// Link only.
	Target string
	Rel    string
	Label  string
}

// IsZero reports whether m carries no media.
func (m Media) IsZero() bool {
	return m.Kind == MediaNone && m.Src == ""
}

package format

import (
	"strings"
	"time"

	"golang.org/x/text/language"
)

// inputLayouts are tried in order when parsing a record date.
var inputLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// localeLayouts holds the short numeric date layout for each supported
// locale. The order matters: the first entry is the fallback for the matcher.
var localeLayouts = []struct {
	tag    language.Tag
	layout string
}{
	{language.AmericanEnglish, "1/2/2006"},
	{language.BritishEnglish, "02/01/2006"},
	{language.German, "2.1.2006"},
	{language.French, "02/01/2006"},
	{language.Spanish, "2/1/2006"},
	{language.Italian, "2/1/2006"},
	{language.Portuguese, "02/01/2006"},
	{language.Dutch, "2-1-2006"},
	{language.Japanese, "2006/1/2"},
	{language.Chinese, "2006/1/2"},
	{language.Korean, "2006. 1. 2."},
	{language.Swedish, "2006-01-02"},
}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, len(localeLayouts))
	for i, l := range localeLayouts {
		tags[i] = l.tag
	}
	return language.NewMatcher(tags)
}()

// Formatter renders record dates for display.
type Formatter struct {
	locale language.Tag
	layout string
}

// NewFormatter returns a Formatter for the given BCP 47 locale ("en-US",
// "de", "ja-JP"...). Unknown or invalid locales fall back to en-US.
func NewFormatter(locale string) *Formatter {
	idx := 0
	if tag, err := language.Parse(strings.TrimSpace(locale)); err == nil {
		_, idx, _ = matcher.Match(tag)
	}
	l := localeLayouts[idx]
	return &Formatter{locale: l.tag, layout: l.layout}
}

// Locale returns the locale the formatter matched.
func (f *Formatter) Locale() string {
	return f.locale.String()
}

// Format returns the display form of raw. When raw cannot be parsed as a
// date it is returned unchanged.
func (f *Formatter) Format(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return raw
	}
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(f.layout)
		}
	}
	return raw
}

var defaultFormatter = NewFormatter("en-US")

// Date formats raw with the en-US formatter.
func Date(raw string) string {
	return defaultFormatter.Format(raw)
}

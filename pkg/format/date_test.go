package format

import "testing"

func TestFormatValidDates(t *testing.T) {
	tests := []struct {
		locale string
		raw    string
		want   string
	}{
		{"en-US", "2021-01-02", "1/2/2021"},
		{"", "2021-01-02", "1/2/2021"},
		{"en-GB", "2021-01-02", "02/01/2021"},
		{"de-DE", "2021-01-02", "2.1.2021"},
		{"ja", "2021-01-02", "2021/1/2"},
		{"en-US", "2021-01-02T10:00:00Z", "1/2/2021"},
		{"en-US", "2021-01-02T10:00:00", "1/2/2021"},
		{"xx-invalid-locale!", "2021-12-25", "12/25/2021"},
	}
	for _, tt := range tests {
		f := NewFormatter(tt.locale)
		if got := f.Format(tt.raw); got != tt.want {
			t.Errorf("NewFormatter(%q).Format(%q) = %q, want %q", tt.locale, tt.raw, got, tt.want)
		}
	}
}

func TestFormatMalformedReturnsInput(t *testing.T) {
	inputs := []string{"not-a-date", "", "2021-13-45", "yesterday", "  "}
	f := NewFormatter("en-US")
	for _, in := range inputs {
		if got := f.Format(in); got != in {
			t.Errorf("Format(%q) = %q, want input unchanged", in, got)
		}
	}
}

func TestDateUsesDefaultLocale(t *testing.T) {
	if got := Date("not-a-date"); got != "not-a-date" {
		t.Fatalf("Date = %q", got)
	}
	if got := Date("1995-06-16"); got != "6/16/1995" {
		t.Fatalf("Date = %q", got)
	}
}

func TestLocale(t *testing.T) {
	if got := NewFormatter("de").Locale(); got != "de" {
		t.Fatalf("Locale = %q, want de", got)
	}
}

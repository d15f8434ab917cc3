package transcribe

import "testing"

func TestFormatTimestamp(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0.0, "00:00:00,000"},
		{1.5, "00:00:01,500"},
		{59.999, "00:00:59,999"},
		{61.0, "00:01:01,000"},
		{3661.25, "01:01:01,250"},
		{7322.5, "02:02:02,500"},
		{-5.0, "00:00:00,000"},
		// Millisecond rounding carries into the second.
		{1.9996, "00:00:02,000"},
	}
	for _, tc := range cases {
		if got := FormatTimestamp(tc.seconds); got != tc.want {
			t.Errorf("FormatTimestamp(%v) = %s, want %s", tc.seconds, got, tc.want)
		}
	}
}

func TestRenderSRT(t *testing.T) {
	doc := Document{Segments: []Segment{
		{Start: 0.0, End: 2.5, Text: "  Hello there.  "},
		{Start: 2.5, End: 5.0, Text: "General Kenobi."},
	}}
	want := "1\n00:00:00,000 --> 00:00:02,500\nHello there.\n\n" +
		"2\n00:00:02,500 --> 00:00:05,000\nGeneral Kenobi.\n\n"
	if got := doc.RenderSRT(); got != want {
		t.Fatalf("RenderSRT:\n got %q\nwant %q", got, want)
	}
}

func TestRenderSRTEmpty(t *testing.T) {
	if got := (Document{}).RenderSRT(); got != "" {
		t.Fatalf("empty document rendered %q", got)
	}
}

func TestNormalizeLanguage(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"en", "en"},
		{"English", "en"},
		{"SPANISH", "es"},
		{"ja", "ja"},
		{"", "en"},
		{"xx", "xx"},
		{"klingon", "en"},
	}
	for _, tc := range cases {
		if got := NormalizeLanguage(tc.input); got != tc.want {
			t.Errorf("NormalizeLanguage(%q) = %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestLanguageDisplayName(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"en", "English"},
		{" ES ", "Spanish"},
		{"xx", "xx"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := LanguageDisplayName(tc.input); got != tc.want {
			t.Errorf("LanguageDisplayName(%q) = %s, want %s", tc.input, got, tc.want)
		}
	}
}

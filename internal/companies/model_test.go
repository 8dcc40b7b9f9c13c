package companies

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Google Inc", "google-inc"},
		{"  Patagonia  ", "patagonia"},
		{"McKinsey & Company", "mckinsey-&-company"},
		{"ACME", "acme"},
		{"multi   space", "multi-space"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatCompanyName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ibm", "IBM"},
		{"spacex", "SpaceX"},
		{"linkedin", "LinkedIn"},
		{"google-inc", "Google Inc"},
		{"bank of america", "Bank of America"},
		{"the body shop", "The Body Shop"},
		{"", "Unknown Company"},
		{"   ", "Unknown Company"},
		{"eBay", "EBay"},
	}
	for _, tc := range cases {
		if got := FormatCompanyName(tc.in); got != tc.want {
			t.Errorf("FormatCompanyName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

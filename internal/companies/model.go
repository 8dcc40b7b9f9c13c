package companies

import (
	"regexp"
	"strings"
	"time"
)

type Company struct {
	Slug          string    `firestore:"slug" json:"slug"`
	Name          string    `firestore:"name" json:"name"`
	Industry      string    `firestore:"industry" json:"industry"`
	Description   string    `firestore:"description" json:"description"`
	AverageRating float64   `firestore:"averageRating" json:"averageRating,omitempty"`
	ReviewCount   int       `firestore:"reviewCount" json:"reviewCount,omitempty"`
	CreatedAt     time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
}

var whitespace = regexp.MustCompile(`\s+`)

// Slugify derives the canonical company identifier, e.g. "Google Inc" →
// "google-inc". Every review and survey-status record is keyed by this.
func Slugify(name string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// Known acronyms rendered all-caps.
var acronyms = map[string]bool{
	"IBM": true, "HP": true, "SAP": true, "AWS": true, "NASA": true,
	"NVIDIA": true, "AMD": true, "AT&T": true, "BMW": true, "CNN": true,
	"BBC": true, "IKEA": true, "HSBC": true, "UPS": true, "USA": true,
	"UK": true, "EU": true, "MIT": true, "UCLA": true, "NYU": true,
	"KPMG": true, "GM": true, "GE": true, "J&J": true, "P&G": true,
}

// Brands whose internal capitalization must be preserved.
var mixedCaseBrands = map[string]string{
	"spacex":             "SpaceX",
	"linkedin":           "LinkedIn",
	"youtube":            "YouTube",
	"paypal":             "PayPal",
	"deloitte":           "Deloitte",
	"accenture":          "Accenture",
	"salesforce":         "Salesforce",
	"servicenow":         "ServiceNow",
	"fedex":              "FedEx",
	"mckinsey & company": "McKinsey & Company",
}

// Connectives left lowercase unless leading.
var lowercaseWords = map[string]bool{
	"a": true, "an": true, "and": true, "as": true, "at": true, "but": true,
	"by": true, "for": true, "from": true, "in": true, "nor": true,
	"of": true, "on": true, "or": true, "the": true, "to": true,
	"with": true, "via": true, "per": true,
}

var internalCaps = regexp.MustCompile(`[a-z][A-Z]`)

// FormatCompanyName renders a display name from whatever casing the user (or
// a slug) provided: acronyms all-caps, known brands in their own casing,
// title case otherwise.
func FormatCompanyName(name string) string {
	cleaned := strings.TrimSpace(name)
	if cleaned == "" {
		return "Unknown Company"
	}

	if upper := strings.ToUpper(cleaned); acronyms[upper] {
		return upper
	}
	if brand, ok := mixedCaseBrands[strings.ToLower(cleaned)]; ok {
		return brand
	}
	if internalCaps.MatchString(cleaned) {
		return strings.ToUpper(cleaned[:1]) + cleaned[1:]
	}

	// Slugs arrive hyphenated; display them with spaces.
	words := strings.Fields(strings.ReplaceAll(cleaned, "-", " "))
	for i, word := range words {
		words[i] = formatWord(word, i)
	}
	return strings.Join(words, " ")
}

func formatWord(word string, index int) string {
	if upper := strings.ToUpper(word); acronyms[upper] {
		return upper
	}
	lower := strings.ToLower(word)
	if index > 0 && lowercaseWords[lower] {
		return lower
	}
	return strings.ToUpper(lower[:1]) + lower[1:]
}

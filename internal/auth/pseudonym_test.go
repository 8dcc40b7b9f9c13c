package auth

import (
	"regexp"
	"strconv"
	"testing"
)

var pseudonymPattern = regexp.MustCompile(`^([A-Z][a-z]+)+([0-9]{3})$`)

func TestGeneratePseudonymFormat(t *testing.T) {
	for i := 0; i < 200; i++ {
		alias := GeneratePseudonym()
		m := pseudonymPattern.FindStringSubmatch(alias)
		if m == nil {
			t.Fatalf("pseudonym %q does not match AdjectiveAnimalNNN", alias)
		}
		n, err := strconv.Atoi(m[len(m)-1])
		if err != nil {
			t.Fatal(err)
		}
		if n < 100 || n > 999 {
			t.Errorf("numeric suffix %d out of range [100,999]", n)
		}
	}
}

func TestGeneratePseudonymVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[GeneratePseudonym()] = true
	}
	if len(seen) < 2 {
		t.Error("expected some variety across 50 generated pseudonyms")
	}
}

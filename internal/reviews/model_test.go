package reviews

import (
	"encoding/json"
	"testing"
)

func TestRatingUnmarshal(t *testing.T) {
	var in SubmitInput

	payload := `{"peopleRating": 4, "planetRating": "3", "transparencyRating": 5}`
	if err := json.Unmarshal([]byte(payload), &in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.PeopleRating != 4 {
		t.Errorf("peopleRating: got %d, want 4", in.PeopleRating)
	}
	if in.PlanetRating != 3 {
		t.Errorf("planetRating as string: got %d, want 3", in.PlanetRating)
	}
	if in.TransparencyRating != 5 {
		t.Errorf("transparencyRating: got %d, want 5", in.TransparencyRating)
	}
}

func TestRatingUnmarshalRejectsNonNumeric(t *testing.T) {
	var in SubmitInput
	if err := json.Unmarshal([]byte(`{"peopleRating": "great"}`), &in); err == nil {
		t.Error("non-numeric rating string must fail to decode")
	}
}

func TestRatingMarshalAsNumber(t *testing.T) {
	out, err := json.Marshal(Review{PeopleRating: 4, PlanetRating: 2, TransparencyRating: 5})
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatal(err)
	}
	if v, ok := decoded["peopleRating"].(float64); !ok || v != 4 {
		t.Errorf("peopleRating must marshal as a number, got %v", decoded["peopleRating"])
	}
}

func TestRatingValid(t *testing.T) {
	for _, r := range []Rating{0, 6, -2} {
		if r.Valid() {
			t.Errorf("%d should be invalid", r)
		}
	}
	for _, r := range []Rating{1, 5} {
		if !r.Valid() {
			t.Errorf("%d should be valid", r)
		}
	}
}

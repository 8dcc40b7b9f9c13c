package surveys

import (
	"encoding/json"
	"testing"
)

func TestLikertUnmarshal(t *testing.T) {
	var payload struct {
		Score Likert `json:"score"`
	}

	if err := json.Unmarshal([]byte(`{"score": 4}`), &payload); err != nil {
		t.Fatalf("number: %v", err)
	}
	if payload.Score != 4 {
		t.Errorf("number: got %d, want 4", payload.Score)
	}

	if err := json.Unmarshal([]byte(`{"score": "5"}`), &payload); err != nil {
		t.Fatalf("string: %v", err)
	}
	if payload.Score != 5 {
		t.Errorf("string: got %d, want 5", payload.Score)
	}

	if err := json.Unmarshal([]byte(`{"score": "five"}`), &payload); err == nil {
		t.Error("non-numeric string must fail to decode")
	}
}

func TestLikertMarshalAsNumber(t *testing.T) {
	out, err := json.Marshal(Likert(3))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "3" {
		t.Errorf("got %s, want 3", out)
	}
}

func TestLikertValid(t *testing.T) {
	for _, n := range []Likert{1, 2, 3, 4, 5} {
		if !n.Valid() {
			t.Errorf("%d should be valid", n)
		}
	}
	for _, n := range []Likert{0, -1, 6} {
		if n.Valid() {
			t.Errorf("%d should be invalid", n)
		}
	}
}

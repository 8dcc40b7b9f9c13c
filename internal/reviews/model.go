package reviews

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Rating is a 1-5 section score. Historic clients sent these as strings
// ("4") and newer ones as numbers; both decode to the integer, and the
// stored value is always an integer.
type Rating int

func (r *Rating) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*r = Rating(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("rating must be a number or numeric string")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("rating %q is not numeric", s)
	}
	*r = Rating(n)
	return nil
}

func (r Rating) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(r))
}

func (r Rating) Valid() bool {
	return r >= 1 && r <= 5
}

// Review is one user's ethics review of one company, scored across the
// People / Planet / Transparency sections.
type Review struct {
	ID                 string    `firestore:"-" json:"id"`
	CompanySlug        string    `firestore:"companySlug" json:"companySlug"`
	Company            string    `firestore:"company" json:"company"`
	UserID             string    `firestore:"userId" json:"userId"`
	Pseudonym          string    `firestore:"pseudonym" json:"pseudonym"`
	SelfIdentify       string    `firestore:"selfIdentify" json:"selfIdentify"`
	PeopleText         string    `firestore:"peopleText" json:"peopleText"`
	PeopleRating       Rating    `firestore:"peopleRating" json:"peopleRating"`
	PlanetText         string    `firestore:"planetText" json:"planetText"`
	PlanetRating       Rating    `firestore:"planetRating" json:"planetRating"`
	TransparencyText   string    `firestore:"transparencyText" json:"transparencyText"`
	TransparencyRating Rating    `firestore:"transparencyRating" json:"transparencyRating"`
	Recommend          string    `firestore:"recommend" json:"recommend"`
	References         string    `firestore:"references" json:"references"`
	Likes              int       `firestore:"likes" json:"likes"`
	LikedBy            []string  `firestore:"likedBy" json:"likedBy"`
	CreatedAt          time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time `firestore:"updatedAt" json:"updatedAt"`
}

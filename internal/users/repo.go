package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const collection = "users"

var ErrNotFound = errors.New("user not found")

// Profile is the per-account document. The pseudonym is assigned at signup
// and never changes; reviews and comments display it instead of the name.
type Profile struct {
	UID                       string     `firestore:"uid" json:"uid"`
	Email                     string     `firestore:"email" json:"email"`
	DisplayName               string     `firestore:"displayName" json:"displayName"`
	Pseudonym                 string     `firestore:"pseudonym" json:"pseudonym"`
	Bio                       string     `firestore:"bio" json:"bio"`
	PhotoURL                  string     `firestore:"photoURL" json:"photoURL"`
	SubmittedInitialSurvey    bool       `firestore:"submittedInitialSurvey" json:"submittedInitialSurvey"`
	SubmittedGlobalPostSurvey bool       `firestore:"submittedGlobalPostSurvey" json:"submittedGlobalPostSurvey"`
	FirstCompanyVisitDate     *time.Time `firestore:"firstCompanyVisitDate" json:"firstCompanyVisitDate,omitempty"`
	CreatedAt                 time.Time  `firestore:"createdAt" json:"createdAt"`
	UpdatedAt                 time.Time  `firestore:"updatedAt" json:"updatedAt"`
}

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

// Create writes the base profile document at signup. Merge keeps any fields
// a concurrent first-survey submit may already have set.
func (r *Repo) Create(ctx context.Context, uid, email, pseudonym string) error {
	_, err := r.fs.Collection(collection).Doc(uid).Set(ctx, map[string]interface{}{
		"uid":                       uid,
		"email":                     email,
		"displayName":               "",
		"pseudonym":                 pseudonym,
		"bio":                       "",
		"photoURL":                  "",
		"submittedInitialSurvey":    false,
		"submittedGlobalPostSurvey": false,
		"firstCompanyVisitDate":     nil,
		"createdAt":                 firestore.ServerTimestamp,
		"updatedAt":                 firestore.ServerTimestamp,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("create profile %s: %w", uid, err)
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, uid string) (*Profile, error) {
	doc, err := r.fs.Collection(collection).Doc(uid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile %s: %w", uid, err)
	}

	var p Profile
	if err := doc.DataTo(&p); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", uid, err)
	}
	p.UID = doc.Ref.ID
	return &p, nil
}

// Pseudonym resolves the display alias for an author UID.
func (r *Repo) Pseudonym(ctx context.Context, uid string) (string, error) {
	p, err := r.Get(ctx, uid)
	if err != nil {
		return "", err
	}
	return p.Pseudonym, nil
}

func (r *Repo) UpdateBio(ctx context.Context, uid, bio string) error {
	_, err := r.fs.Collection(collection).Doc(uid).Set(ctx, map[string]interface{}{
		"bio":       bio,
		"updatedAt": firestore.ServerTimestamp,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("update bio for %s: %w", uid, err)
	}
	return nil
}

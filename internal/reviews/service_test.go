package reviews

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethical-careers/ethical-careers-backend/internal/moderation"
)

type fakeStore struct {
	upserted *Review
}

func (f *fakeStore) Upsert(ctx context.Context, rev *Review) (*Review, error) {
	f.upserted = rev
	return rev, nil
}
func (f *fakeStore) Get(ctx context.Context, id string) (*Review, error) { return nil, ErrNotFound }
func (f *fakeStore) ListByCompany(ctx context.Context, slug string) ([]Review, error) {
	return nil, nil
}
func (f *fakeStore) ListAll(ctx context.Context) ([]Review, error) { return nil, nil }
func (f *fakeStore) ToggleLike(ctx context.Context, id, uid string) (*Review, error) {
	return nil, ErrNotFound
}
func (f *fakeStore) Delete(ctx context.Context, id, uid string) error { return ErrNotFound }

type fakeGate struct {
	blockText string
	checked   []string
}

func (f *fakeGate) Check(ctx context.Context, text string) moderation.Result {
	f.checked = append(f.checked, text)
	if f.blockText != "" && text == f.blockText {
		return moderation.Result{Allowed: false, Message: "Content contains inappropriate language and cannot be posted."}
	}
	return moderation.Result{Allowed: true, Message: "Content approved"}
}

type fakePseudonyms struct {
	alias string
	err   error
}

func (f *fakePseudonyms) Pseudonym(ctx context.Context, uid string) (string, error) {
	return f.alias, f.err
}

func validInput() SubmitInput {
	return SubmitInput{
		CompanySlug:        "acme",
		CompanyName:        "Acme",
		PeopleText:         "Treats workers well",
		PeopleRating:       4,
		PlanetText:         "Carbon neutral since 2020",
		PlanetRating:       5,
		TransparencyText:   "Publishes audits",
		TransparencyRating: 3,
		Recommend:          "Yes",
	}
}

func TestSubmitHappyPath(t *testing.T) {
	store := &fakeStore{}
	gate := &fakeGate{}
	svc := NewService(store, gate, &fakePseudonyms{alias: "BraveOtter123"})

	rev, err := svc.Submit(context.Background(), "u1", validInput())
	require.NoError(t, err)

	assert.Equal(t, "acme", rev.CompanySlug)
	assert.Equal(t, "u1", rev.UserID)
	assert.Equal(t, "BraveOtter123", rev.Pseudonym)
	require.NotNil(t, store.upserted)
	// All three section texts went through the gate.
	assert.Len(t, gate.checked, 3)
}

func TestSubmitBlockedTextNotPersisted(t *testing.T) {
	store := &fakeStore{}
	gate := &fakeGate{blockText: "Carbon neutral since 2020"}
	svc := NewService(store, gate, &fakePseudonyms{alias: "BraveOtter123"})

	_, err := svc.Submit(context.Background(), "u1", validInput())

	require.ErrorIs(t, err, ErrBlocked)
	assert.Nil(t, store.upserted, "blocked submissions must not be stored")
}

func TestSubmitValidation(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, &fakeGate{}, &fakePseudonyms{alias: "x"})
	ctx := context.Background()

	noSlug := validInput()
	noSlug.CompanySlug = ""
	_, err := svc.Submit(ctx, "u1", noSlug)
	require.ErrorIs(t, err, ErrValidation)

	badRating := validInput()
	badRating.PlanetRating = 0
	_, err = svc.Submit(ctx, "u1", badRating)
	require.ErrorIs(t, err, ErrValidation)

	badRecommend := validInput()
	badRecommend.Recommend = "Maybe"
	_, err = svc.Submit(ctx, "u1", badRecommend)
	require.ErrorIs(t, err, ErrValidation)

	assert.Nil(t, store.upserted)
}

func TestSubmitSkipsGateForEmptyFields(t *testing.T) {
	gate := &fakeGate{}
	svc := NewService(&fakeStore{}, gate, &fakePseudonyms{alias: "x"})

	in := validInput()
	in.PeopleText = ""
	in.PlanetText = ""
	in.References = "https://example.org/report"

	_, err := svc.Submit(context.Background(), "u1", in)
	require.NoError(t, err)
	// transparency text + references only
	assert.Len(t, gate.checked, 2)
}

func TestSubmitSurvivesPseudonymLookupFailure(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, &fakeGate{}, &fakePseudonyms{err: errors.New("profile missing")})

	rev, err := svc.Submit(context.Background(), "u1", validInput())
	require.NoError(t, err)
	assert.Empty(t, rev.Pseudonym)
	assert.NotNil(t, store.upserted)
}

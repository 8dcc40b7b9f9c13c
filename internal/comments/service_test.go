package comments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethical-careers/ethical-careers-backend/internal/moderation"
)

type fakeStore struct {
	added *Comment
}

func (f *fakeStore) Add(ctx context.Context, cm *Comment) (*Comment, error) {
	f.added = cm
	return cm, nil
}
func (f *fakeStore) ListByReview(ctx context.Context, reviewID string) ([]Comment, error) {
	return nil, nil
}
func (f *fakeStore) ToggleLike(ctx context.Context, id, uid string) (*Comment, error) {
	return nil, ErrNotFound
}
func (f *fakeStore) Delete(ctx context.Context, id, uid string) error { return ErrNotFound }

type fakeGate struct {
	allow bool
}

func (f *fakeGate) Check(ctx context.Context, text string) moderation.Result {
	if f.allow {
		return moderation.Result{Allowed: true, Message: "Content approved"}
	}
	return moderation.Result{Allowed: false, Message: "Content contains inappropriate language and cannot be posted."}
}

type fakePseudonyms struct{ alias string }

func (f *fakePseudonyms) Pseudonym(ctx context.Context, uid string) (string, error) {
	return f.alias, nil
}

func TestAddComment(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, &fakeGate{allow: true}, &fakePseudonyms{alias: "CalmFox400"})

	cm, err := svc.Add(context.Background(), "u1", "rev1", "  agreed, saw the same thing  ")
	require.NoError(t, err)

	assert.Equal(t, "agreed, saw the same thing", cm.Text, "text must be trimmed")
	assert.Equal(t, "rev1", cm.ReviewID)
	assert.Equal(t, "CalmFox400", cm.Pseudonym)
	assert.NotNil(t, store.added)
}

func TestAddCommentRejectsEmptyText(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, &fakeGate{allow: true}, &fakePseudonyms{})

	_, err := svc.Add(context.Background(), "u1", "rev1", "   ")
	require.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, store.added)
}

func TestAddCommentBlockedByGate(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, &fakeGate{allow: false}, &fakePseudonyms{})

	_, err := svc.Add(context.Background(), "u1", "rev1", "something nasty")
	require.ErrorIs(t, err, ErrBlocked)
	assert.Nil(t, store.added, "blocked comments must not be stored")
}

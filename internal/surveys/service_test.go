package surveys

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	snapshot    *Snapshot
	snapshotErr error

	savedPre    *PreSurveyResponse
	savedPost   *PostSurveyResponse
	savedGlobal *GlobalSurveyResponse
	savedSignup *SignupSurveyResponse
	saveErr     error
}

func (f *fakeStore) GetSnapshot(ctx context.Context, uid string) (*Snapshot, error) {
	return f.snapshot, f.snapshotErr
}

func (f *fakeStore) SavePre(ctx context.Context, uid string, res PreSurveyResponse, now time.Time) error {
	f.savedPre = &res
	return f.saveErr
}

func (f *fakeStore) SavePost(ctx context.Context, uid string, res PostSurveyResponse) error {
	f.savedPost = &res
	return f.saveErr
}

func (f *fakeStore) SaveGlobal(ctx context.Context, uid string, res GlobalSurveyResponse, now time.Time) error {
	f.savedGlobal = &res
	return f.saveErr
}

func (f *fakeStore) SaveSignup(ctx context.Context, uid string, res SignupSurveyResponse) error {
	f.savedSignup = &res
	return f.saveErr
}

func newTestService(store *fakeStore, now time.Time) *Service {
	return NewService(store, testThresholds).WithClock(func() time.Time { return now })
}

func TestStatusFailsClosedOnSnapshotError(t *testing.T) {
	store := &fakeStore{snapshotErr: errors.New("firestore unavailable")}
	svc := newTestService(store, time.Now())

	report := svc.Status(context.Background(), "u1", "acme")

	assert.False(t, report.InitialSurveyRequired)
	assert.False(t, report.PreSurveyRequired)
	assert.False(t, report.PostSurveyRequired)
	assert.False(t, report.GlobalPostSurveyRequired)
	assert.Empty(t, report.PendingPostSurveys)
}

func TestStatusReport(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	old := now.Add(-testThresholds.PostSurveyDelay)

	store := &fakeStore{snapshot: &Snapshot{
		UserID:                "u1",
		FirstCompanyVisitDate: old,
		CompanySurveys: map[string]CompanySurveyStatus{
			"acme": {CompanySlug: "acme", PreSubmitted: true, FirstVisitDate: old},
		},
	}}
	svc := newTestService(store, now)

	report := svc.Status(context.Background(), "u1", "acme")

	assert.True(t, report.InitialSurveyRequired)
	assert.False(t, report.PreSurveyRequired)
	assert.True(t, report.PostSurveyRequired)
	assert.True(t, report.GlobalPostSurveyRequired)
	assert.Equal(t, []string{"acme"}, report.PendingPostSurveys)
}

func TestStatusWithoutCompanyContext(t *testing.T) {
	store := &fakeStore{snapshot: &Snapshot{}}
	svc := newTestService(store, time.Now())

	report := svc.Status(context.Background(), "u1", "")

	// Company-scoped gates stay false when no company is in view.
	assert.False(t, report.PreSurveyRequired)
	assert.False(t, report.PostSurveyRequired)
	assert.True(t, report.InitialSurveyRequired)
}

func TestSubmitPreValidation(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, time.Now())
	ctx := context.Background()

	err := svc.SubmitPre(ctx, "u1", PreSurveyResponse{CompanyName: "Acme"})
	require.ErrorIs(t, err, ErrValidation)

	err = svc.SubmitPre(ctx, "u1", PreSurveyResponse{CompanySlug: "acme", OverallEthical: 6, ConsiderWorking: "Yes"})
	require.ErrorIs(t, err, ErrValidation)

	err = svc.SubmitPre(ctx, "u1", PreSurveyResponse{CompanySlug: "acme", OverallEthical: 3})
	require.ErrorIs(t, err, ErrValidation)

	assert.Nil(t, store.savedPre, "invalid submissions must not reach the store")

	err = svc.SubmitPre(ctx, "u1", PreSurveyResponse{CompanySlug: "acme", OverallEthical: 3, ConsiderWorking: "Maybe"})
	require.NoError(t, err)
	require.NotNil(t, store.savedPre)
	assert.Equal(t, "acme", store.savedPre.CompanySlug)
}

func TestSubmitPostValidation(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, time.Now())
	ctx := context.Background()

	valid := PostSurveyResponse{
		CompanySlug:         "acme",
		Summary:             "Better than expected",
		OverallEthical:      4,
		ConsiderWorking:     "Yes",
		WorkersCommunities:  4,
		EnvironmentalImpact: 3,
		Transparency:        4,
		TrustStatements:     3,
		EthicalConcerns:     2,
		LookedUpEthics:      "Yes",
	}

	missingSummary := valid
	missingSummary.Summary = ""
	require.ErrorIs(t, svc.SubmitPost(ctx, "u1", missingSummary), ErrValidation)

	badRating := valid
	badRating.Transparency = 0
	require.ErrorIs(t, svc.SubmitPost(ctx, "u1", badRating), ErrValidation)

	noSlug := valid
	noSlug.CompanySlug = ""
	require.ErrorIs(t, svc.SubmitPost(ctx, "u1", noSlug), ErrValidation)

	assert.Nil(t, store.savedPost)

	require.NoError(t, svc.SubmitPost(ctx, "u1", valid))
	require.NotNil(t, store.savedPost)
}

func TestSubmitPostPropagatesPreSurveyRequired(t *testing.T) {
	store := &fakeStore{saveErr: ErrPreSurveyRequired}
	svc := newTestService(store, time.Now())

	err := svc.SubmitPost(context.Background(), "u1", PostSurveyResponse{
		CompanySlug: "acme", Summary: "s", OverallEthical: 3, ConsiderWorking: "No",
		WorkersCommunities: 3, EnvironmentalImpact: 3, Transparency: 3,
		TrustStatements: 3, EthicalConcerns: 3, LookedUpEthics: "No",
	})
	assert.ErrorIs(t, err, ErrPreSurveyRequired)
}

func TestSubmitGlobalValidation(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, time.Now())
	ctx := context.Background()

	err := svc.SubmitGlobal(ctx, "u1", GlobalSurveyResponse{})
	require.ErrorIs(t, err, ErrValidation)

	valid := GlobalSurveyResponse{
		Summary: "overall fine", WorkersCommunities: 3, EnvironmentalImpact: 3,
		Transparency: 3, TrustStatements: 3, EthicalConcerns: 3, LookedUpEthics: "Yes",
	}
	require.NoError(t, svc.SubmitGlobal(ctx, "u1", valid))
	require.NotNil(t, store.savedGlobal)
}

func TestSubmitSignupValidation(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, time.Now())
	ctx := context.Background()

	err := svc.SubmitSignup(ctx, "u1", SignupSurveyResponse{LookedUpEthics: "Yes"})
	require.ErrorIs(t, err, ErrValidation, "missing likert answers must fail")

	valid := SignupSurveyResponse{
		WorkersCommunities: 5, EnvironmentalImpact: 4, Transparency: 3,
		TrustStatements: 2, EthicalConcerns: 1, LookedUpEthics: "No",
	}
	require.NoError(t, svc.SubmitSignup(ctx, "u1", valid))
	require.NotNil(t, store.savedSignup)
}

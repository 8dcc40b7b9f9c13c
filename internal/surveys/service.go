package surveys

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// ErrValidation marks a submission rejected before any write happened.
var ErrValidation = errors.New("invalid survey submission")

type Store interface {
	GetSnapshot(ctx context.Context, uid string) (*Snapshot, error)
	SavePre(ctx context.Context, uid string, res PreSurveyResponse, now time.Time) error
	SavePost(ctx context.Context, uid string, res PostSurveyResponse) error
	SaveGlobal(ctx context.Context, uid string, res GlobalSurveyResponse, now time.Time) error
	SaveSignup(ctx context.Context, uid string, res SignupSurveyResponse) error
}

type Service struct {
	store      Store
	thresholds Thresholds
	now        func() time.Time
}

func NewService(store Store, thresholds Thresholds) *Service {
	return &Service{store: store, thresholds: thresholds, now: time.Now}
}

// WithClock overrides the service clock. Tests only.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Status evaluates every gate for the caller. A failed snapshot read fails
// closed: the report comes back all-false rather than erroring, so a backend
// hiccup never traps a user behind a survey prompt.
func (s *Service) Status(ctx context.Context, uid, companySlug string) StatusReport {
	snap, err := s.store.GetSnapshot(ctx, uid)
	if err != nil {
		log.Printf("[surveys] snapshot read failed for %s: %v", uid, err)
		return StatusReport{}
	}

	now := s.now()
	report := StatusReport{
		InitialSurveyRequired:    NeedsInitialSurvey(snap),
		GlobalPostSurveyRequired: NeedsGlobalPostSurvey(snap, now, s.thresholds),
		PendingPostSurveys:       CompaniesNeedingPostSurvey(snap, now, s.thresholds),
	}
	if companySlug != "" {
		report.PreSurveyRequired = NeedsPreSurvey(snap, companySlug)
		report.PostSurveyRequired = NeedsPostSurvey(snap, companySlug, now, s.thresholds)
	}
	return report
}

func (s *Service) SubmitPre(ctx context.Context, uid string, res PreSurveyResponse) error {
	if res.CompanySlug == "" {
		return fmt.Errorf("%w: companySlug is required", ErrValidation)
	}
	if !res.OverallEthical.Valid() || res.ConsiderWorking == "" {
		return fmt.Errorf("%w: please answer all questions before continuing", ErrValidation)
	}
	return s.store.SavePre(ctx, uid, res, s.now())
}

func (s *Service) SubmitPost(ctx context.Context, uid string, res PostSurveyResponse) error {
	if res.CompanySlug == "" {
		return fmt.Errorf("%w: companySlug is required", ErrValidation)
	}
	if res.Summary == "" || res.ConsiderWorking == "" || res.LookedUpEthics == "" {
		return fmt.Errorf("%w: please answer all questions before continuing", ErrValidation)
	}
	for _, l := range []Likert{
		res.OverallEthical, res.WorkersCommunities, res.EnvironmentalImpact,
		res.Transparency, res.TrustStatements, res.EthicalConcerns,
	} {
		if !l.Valid() {
			return fmt.Errorf("%w: ratings must be between 1 and 5", ErrValidation)
		}
	}
	return s.store.SavePost(ctx, uid, res)
}

func (s *Service) SubmitGlobal(ctx context.Context, uid string, res GlobalSurveyResponse) error {
	if res.LookedUpEthics == "" {
		return fmt.Errorf("%w: please finish the overall evaluation section", ErrValidation)
	}
	for _, l := range []Likert{
		res.WorkersCommunities, res.EnvironmentalImpact, res.Transparency,
		res.TrustStatements, res.EthicalConcerns,
	} {
		if !l.Valid() {
			return fmt.Errorf("%w: please finish the overall evaluation section", ErrValidation)
		}
	}
	return s.store.SaveGlobal(ctx, uid, res, s.now())
}

func (s *Service) SubmitSignup(ctx context.Context, uid string, res SignupSurveyResponse) error {
	if res.LookedUpEthics == "" {
		return fmt.Errorf("%w: please answer all questions before continuing", ErrValidation)
	}
	for _, l := range []Likert{
		res.WorkersCommunities, res.EnvironmentalImpact, res.Transparency,
		res.TrustStatements, res.EthicalConcerns,
	} {
		if !l.Valid() {
			return fmt.Errorf("%w: please answer all questions before continuing", ErrValidation)
		}
	}
	return s.store.SaveSignup(ctx, uid, res)
}

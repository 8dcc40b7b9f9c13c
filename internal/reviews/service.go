package reviews

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ethical-careers/ethical-careers-backend/internal/moderation"
)

var (
	// ErrBlocked is returned when the moderation gate rejects a free-text
	// field; nothing is written.
	ErrBlocked = errors.New("submission blocked by moderation")

	ErrValidation = errors.New("invalid review submission")
)

type Store interface {
	Upsert(ctx context.Context, rev *Review) (*Review, error)
	Get(ctx context.Context, id string) (*Review, error)
	ListByCompany(ctx context.Context, slug string) ([]Review, error)
	ListAll(ctx context.Context) ([]Review, error)
	ToggleLike(ctx context.Context, id, uid string) (*Review, error)
	Delete(ctx context.Context, id, uid string) error
}

// Gate is the moderation check applied to each non-empty free-text field
// before anything is persisted.
type Gate interface {
	Check(ctx context.Context, text string) moderation.Result
}

// PseudonymSource resolves the author's stable display alias.
type PseudonymSource interface {
	Pseudonym(ctx context.Context, uid string) (string, error)
}

type SubmitInput struct {
	CompanySlug        string `json:"companySlug"`
	CompanyName        string `json:"companyName"`
	SelfIdentify       string `json:"selfIdentify"`
	PeopleText         string `json:"peopleText"`
	PeopleRating       Rating `json:"peopleRating"`
	PlanetText         string `json:"planetText"`
	PlanetRating       Rating `json:"planetRating"`
	TransparencyText   string `json:"transparencyText"`
	TransparencyRating Rating `json:"transparencyRating"`
	Recommend          string `json:"recommend"`
	References         string `json:"references"`
}

type Service struct {
	store      Store
	gate       Gate
	pseudonyms PseudonymSource
}

func NewService(store Store, gate Gate, pseudonyms PseudonymSource) *Service {
	return &Service{store: store, gate: gate, pseudonyms: pseudonyms}
}

// Submit validates, moderates, and persists a review. At most one review per
// (author, company) exists afterwards.
func (s *Service) Submit(ctx context.Context, uid string, in SubmitInput) (*Review, error) {
	if in.CompanySlug == "" {
		return nil, fmt.Errorf("%w: companySlug is required", ErrValidation)
	}
	for _, rating := range []Rating{in.PeopleRating, in.PlanetRating, in.TransparencyRating} {
		if !rating.Valid() {
			return nil, fmt.Errorf("%w: ratings must be between 1 and 5", ErrValidation)
		}
	}
	if in.Recommend != "Yes" && in.Recommend != "No" {
		return nil, fmt.Errorf("%w: recommend must be Yes or No", ErrValidation)
	}

	for _, text := range []string{in.PeopleText, in.PlanetText, in.TransparencyText, in.References} {
		if text == "" {
			continue
		}
		if res := s.gate.Check(ctx, text); !res.Allowed {
			return nil, fmt.Errorf("%w: %s", ErrBlocked, res.Message)
		}
	}

	pseudonym, err := s.pseudonyms.Pseudonym(ctx, uid)
	if err != nil {
		// Reviews must stay attributable to the alias, but a profile read
		// failure shouldn't lose the submission.
		log.Printf("[reviews] pseudonym lookup failed for %s: %v", uid, err)
	}

	rev := &Review{
		CompanySlug:        in.CompanySlug,
		Company:            in.CompanyName,
		UserID:             uid,
		Pseudonym:          pseudonym,
		SelfIdentify:       in.SelfIdentify,
		PeopleText:         in.PeopleText,
		PeopleRating:       in.PeopleRating,
		PlanetText:         in.PlanetText,
		PlanetRating:       in.PlanetRating,
		TransparencyText:   in.TransparencyText,
		TransparencyRating: in.TransparencyRating,
		Recommend:          in.Recommend,
		References:         in.References,
	}
	return s.store.Upsert(ctx, rev)
}

func (s *Service) ListByCompany(ctx context.Context, slug string) ([]Review, error) {
	return s.store.ListByCompany(ctx, slug)
}

func (s *Service) ListAll(ctx context.Context) ([]Review, error) {
	return s.store.ListAll(ctx)
}

func (s *Service) ToggleLike(ctx context.Context, id, uid string) (*Review, error) {
	return s.store.ToggleLike(ctx, id, uid)
}

func (s *Service) Delete(ctx context.Context, id, uid string) error {
	return s.store.Delete(ctx, id, uid)
}

package comments

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/ethical-careers/ethical-careers-backend/internal/moderation"
)

var (
	ErrBlocked    = errors.New("comment blocked by moderation")
	ErrValidation = errors.New("invalid comment")
)

type Store interface {
	Add(ctx context.Context, cm *Comment) (*Comment, error)
	ListByReview(ctx context.Context, reviewID string) ([]Comment, error)
	ToggleLike(ctx context.Context, id, uid string) (*Comment, error)
	Delete(ctx context.Context, id, uid string) error
}

type Gate interface {
	Check(ctx context.Context, text string) moderation.Result
}

type PseudonymSource interface {
	Pseudonym(ctx context.Context, uid string) (string, error)
}

type Service struct {
	store      Store
	gate       Gate
	pseudonyms PseudonymSource
}

func NewService(store Store, gate Gate, pseudonyms PseudonymSource) *Service {
	return &Service{store: store, gate: gate, pseudonyms: pseudonyms}
}

func (s *Service) Add(ctx context.Context, uid, reviewID, text string) (*Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", ErrValidation)
	}

	if res := s.gate.Check(ctx, text); !res.Allowed {
		return nil, fmt.Errorf("%w: %s", ErrBlocked, res.Message)
	}

	pseudonym, err := s.pseudonyms.Pseudonym(ctx, uid)
	if err != nil {
		log.Printf("[comments] pseudonym lookup failed for %s: %v", uid, err)
	}

	return s.store.Add(ctx, &Comment{
		ReviewID:  reviewID,
		Text:      text,
		UserID:    uid,
		Pseudonym: pseudonym,
	})
}

func (s *Service) ListByReview(ctx context.Context, reviewID string) ([]Comment, error) {
	return s.store.ListByReview(ctx, reviewID)
}

func (s *Service) ToggleLike(ctx context.Context, id, uid string) (*Comment, error) {
	return s.store.ToggleLike(ctx, id, uid)
}

func (s *Service) Delete(ctx context.Context, id, uid string) error {
	return s.store.Delete(ctx, id, uid)
}

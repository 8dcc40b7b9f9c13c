package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethical-careers/ethical-careers-backend/internal/comments"
	"github.com/ethical-careers/ethical-careers-backend/internal/reviews"
)

type ReviewLister interface {
	ListByAuthor(ctx context.Context, uid string) ([]reviews.Review, error)
}

type CommentLister interface {
	ListByAuthor(ctx context.Context, uid string) ([]comments.Comment, error)
}

// PublicProfile is what other users see: the pseudonym and contribution
// history, never the email or display name.
type PublicProfile struct {
	Pseudonym string             `json:"pseudonym"`
	Bio       string             `json:"bio"`
	Reviews   []reviews.Review   `json:"reviews"`
	Comments  []comments.Comment `json:"comments"`
}

type Service struct {
	repo        *Repo
	reviewsList ReviewLister
	commentList CommentLister
}

func NewService(repo *Repo, rl ReviewLister, cl CommentLister) *Service {
	return &Service{repo: repo, reviewsList: rl, commentList: cl}
}

func (s *Service) Me(ctx context.Context, uid string) (*Profile, error) {
	return s.repo.Get(ctx, uid)
}

// Public assembles the pseudonymous view of any account.
func (s *Service) Public(ctx context.Context, uid string) (*PublicProfile, error) {
	p, err := s.repo.Get(ctx, uid)
	if err != nil {
		return nil, err
	}

	revs, err := s.reviewsList.ListByAuthor(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("list reviews for profile %s: %w", uid, err)
	}
	cms, err := s.commentList.ListByAuthor(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("list comments for profile %s: %w", uid, err)
	}

	pseudonym := p.Pseudonym
	if pseudonym == "" {
		pseudonym = "Anonymous"
	}
	return &PublicProfile{
		Pseudonym: pseudonym,
		Bio:       p.Bio,
		Reviews:   revs,
		Comments:  cms,
	}, nil
}

func (s *Service) UpdateBio(ctx context.Context, uid, bio string) (*Profile, error) {
	if err := s.repo.UpdateBio(ctx, uid, strings.TrimSpace(bio)); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, uid)
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

var (
	ErrEmailExists   = errors.New("email already registered")
	ErrWeakPassword  = errors.New("password must be at least 6 characters")
	ErrInvalidSignup = errors.New("invalid signup request")
)

// ProfileCreator writes the base profile document for a new account.
type ProfileCreator interface {
	Create(ctx context.Context, uid, email, pseudonym string) error
}

// Service owns account lifecycle: signup, email verification links, and
// password resets. Token verification lives in middleware.
type Service struct {
	client   *fbauth.Client
	profiles ProfileCreator
	settings *fbauth.ActionCodeSettings
}

func NewService(client *fbauth.Client, profiles ProfileCreator, settings *fbauth.ActionCodeSettings) *Service {
	return &Service{client: client, profiles: profiles, settings: settings}
}

type SignupResult struct {
	UID              string `json:"uid"`
	Pseudonym        string `json:"pseudonym"`
	VerificationLink string `json:"verificationLink,omitempty"`
}

// Signup creates the Firebase account, writes the profile document with a
// freshly generated pseudonym, and issues an email verification link.
func (s *Service) Signup(ctx context.Context, email, password, displayName string) (*SignupResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", ErrInvalidSignup)
	}
	if len(password) < 6 {
		return nil, ErrWeakPassword
	}

	params := (&fbauth.UserToCreate{}).
		Email(email).
		Password(password).
		EmailVerified(false)
	if displayName != "" {
		params = params.DisplayName(displayName)
	}

	user, err := s.client.CreateUser(ctx, params)
	if err != nil {
		if fbauth.IsEmailAlreadyExists(err) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	pseudonym := GeneratePseudonym()
	if err := s.profiles.Create(ctx, user.UID, email, pseudonym); err != nil {
		// The auth record exists but the profile write failed; the signup
		// survey endpoint re-creates the profile on first submit.
		log.Printf("[auth] profile write failed for %s: %v", user.UID, err)
	}

	link, err := s.client.EmailVerificationLinkWithSettings(ctx, email, s.settings)
	if err != nil {
		log.Printf("[auth] verification link failed for %s: %v", email, err)
		link = ""
	}

	return &SignupResult{UID: user.UID, Pseudonym: pseudonym, VerificationLink: link}, nil
}

// ResendVerification issues a fresh verification link for an existing
// account.
func (s *Service) ResendVerification(ctx context.Context, email string) (string, error) {
	link, err := s.client.EmailVerificationLinkWithSettings(ctx, email, s.settings)
	if err != nil {
		return "", fmt.Errorf("verification link: %w", err)
	}
	return link, nil
}

// PasswordResetLink issues a reset link. Callers must not reveal whether
// the email exists.
func (s *Service) PasswordResetLink(ctx context.Context, email string) (string, error) {
	link, err := s.client.PasswordResetLinkWithSettings(ctx, email, s.settings)
	if err != nil {
		return "", fmt.Errorf("password reset link: %w", err)
	}
	return link, nil
}

// EmailVerified reports whether the account completed email verification.
func (s *Service) EmailVerified(ctx context.Context, uid string) (bool, error) {
	user, err := s.client.GetUser(ctx, uid)
	if err != nil {
		return false, fmt.Errorf("get user %s: %w", uid, err)
	}
	return user.EmailVerified, nil
}

package moderation

import (
	"context"
	"log"

	"github.com/ethical-careers/ethical-careers-backend/config"
)

const (
	blockedMessage  = "Content contains inappropriate language and cannot be posted."
	approvedMessage = "Content approved"
)

// Thresholds are per-attribute block levels. A score must strictly exceed
// its threshold to block; a score exactly at the threshold passes.
type Thresholds struct {
	Toxicity       float64
	SevereToxicity float64
	IdentityAttack float64
	Insult         float64
	Profanity      float64
	Threat         float64
}

func ThresholdsFromConfig(cfg config.ModerationConfig) Thresholds {
	return Thresholds{
		Toxicity:       cfg.ToxicityThreshold,
		SevereToxicity: cfg.SevereToxicityThreshold,
		IdentityAttack: cfg.IdentityAttackThreshold,
		Insult:         cfg.InsultThreshold,
		Profanity:      cfg.ProfanityThreshold,
		Threat:         cfg.ThreatThreshold,
	}
}

// Result is the gate's verdict for one piece of text.
type Result struct {
	Allowed bool   `json:"allowed"`
	Scores  Scores `json:"scores"`
	Message string `json:"message"`
}

type Analyzer interface {
	Analyze(ctx context.Context, text string) (Scores, error)
}

// Service is the gate-then-mutate collaborator every free-text submission
// passes through before persistence.
type Service struct {
	analyzer   Analyzer
	cache      *Cache
	thresholds Thresholds
}

func NewService(analyzer Analyzer, cache *Cache, thresholds Thresholds) *Service {
	return &Service{analyzer: analyzer, cache: cache, thresholds: thresholds}
}

// Check scores text and applies the thresholds. Upstream failure fails open:
// the submission proceeds as approved. Survey gating fails closed, this gate
// fails open; a wrongly blocked legitimate post is the worse failure here.
func (s *Service) Check(ctx context.Context, text string) Result {
	if text == "" {
		return Result{Allowed: true, Message: approvedMessage}
	}

	scores, ok := s.cache.Get(ctx, text)
	if !ok {
		var err error
		scores, err = s.analyzer.Analyze(ctx, text)
		if err != nil {
			log.Printf("[moderation] analyze failed, allowing submission: %v", err)
			return Result{Allowed: true, Message: approvedMessage}
		}
		s.cache.Set(ctx, text, scores)
	}

	return s.verdict(scores)
}

func (s *Service) verdict(scores Scores) Result {
	blocked := scores.Toxicity > s.thresholds.Toxicity ||
		scores.SevereToxicity > s.thresholds.SevereToxicity ||
		scores.IdentityAttack > s.thresholds.IdentityAttack ||
		scores.Insult > s.thresholds.Insult ||
		scores.Profanity > s.thresholds.Profanity ||
		scores.Threat > s.thresholds.Threat

	result := Result{Allowed: !blocked, Scores: scores, Message: approvedMessage}
	if blocked {
		result.Message = blockedMessage
	}
	return result
}

package moderation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyzer struct {
	scores Scores
	err    error
	calls  int
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, text string) (Scores, error) {
	f.calls++
	return f.scores, f.err
}

func defaultThresholds() Thresholds {
	return Thresholds{
		Toxicity:       0.8,
		SevereToxicity: 0.7,
		IdentityAttack: 0.7,
		Insult:         0.8,
		Profanity:      0.8,
		Threat:         0.7,
	}
}

func TestCheckAllowsCleanText(t *testing.T) {
	analyzer := &fakeAnalyzer{scores: Scores{Toxicity: 0.1}}
	svc := NewService(analyzer, NewCache(nil, 0), defaultThresholds())

	res := svc.Check(context.Background(), "great place to work")

	assert.True(t, res.Allowed)
	assert.Equal(t, "Content approved", res.Message)
}

func TestCheckBlocksAboveThreshold(t *testing.T) {
	analyzer := &fakeAnalyzer{scores: Scores{Toxicity: 0.81}}
	svc := NewService(analyzer, NewCache(nil, 0), defaultThresholds())

	res := svc.Check(context.Background(), "some toxic text")

	assert.False(t, res.Allowed)
	assert.Equal(t, "Content contains inappropriate language and cannot be posted.", res.Message)
}

// A score exactly at the threshold passes; only strictly greater blocks.
func TestCheckThresholdBoundary(t *testing.T) {
	analyzer := &fakeAnalyzer{scores: Scores{Toxicity: 0.8}}
	svc := NewService(analyzer, NewCache(nil, 0), defaultThresholds())

	res := svc.Check(context.Background(), "borderline text")
	assert.True(t, res.Allowed)
}

func TestCheckBlocksOnAnyAttribute(t *testing.T) {
	cases := []struct {
		name   string
		scores Scores
	}{
		{"severe toxicity", Scores{SevereToxicity: 0.71}},
		{"identity attack", Scores{IdentityAttack: 0.71}},
		{"insult", Scores{Insult: 0.81}},
		{"profanity", Scores{Profanity: 0.81}},
		{"threat", Scores{Threat: 0.71}},
	}
	for _, tc := range cases {
		analyzer := &fakeAnalyzer{scores: tc.scores}
		svc := NewService(analyzer, NewCache(nil, 0), defaultThresholds())

		res := svc.Check(context.Background(), "text")
		assert.False(t, res.Allowed, tc.name)
	}
}

func TestCheckFailsOpenOnUpstreamError(t *testing.T) {
	analyzer := &fakeAnalyzer{err: errors.New("upstream timeout")}
	svc := NewService(analyzer, NewCache(nil, 0), defaultThresholds())

	res := svc.Check(context.Background(), "anything")

	assert.True(t, res.Allowed, "upstream failure must not block submissions")
}

func TestCheckAllowsEmptyText(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	svc := NewService(analyzer, NewCache(nil, 0), defaultThresholds())

	res := svc.Check(context.Background(), "")

	assert.True(t, res.Allowed)
	assert.Zero(t, analyzer.calls, "empty text must not hit the analyzer")
}

func TestCheckUsesCache(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	analyzer := &fakeAnalyzer{scores: Scores{Toxicity: 0.95}}
	svc := NewService(analyzer, NewCache(client, time.Hour), defaultThresholds())
	ctx := context.Background()

	first := svc.Check(ctx, "same text twice")
	second := svc.Check(ctx, "same text twice")

	assert.False(t, first.Allowed)
	assert.False(t, second.Allowed)
	assert.Equal(t, 1, analyzer.calls, "second check must come from cache")
}

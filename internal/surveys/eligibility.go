package surveys

import (
	"sort"
	"time"
)

// Thresholds are the gate delays, injected from config so tests can run with
// short values and production with real ones.
type Thresholds struct {
	PostSurveyDelay   time.Duration
	GlobalSurveyDelay time.Duration
}

// All evaluators fail closed: a nil snapshot (profile missing or unreadable)
// means "don't prompt", never an error.

// NeedsInitialSurvey reports whether the signup survey is still outstanding.
func NeedsInitialSurvey(s *Snapshot) bool {
	if s == nil {
		return false
	}
	return !s.SubmittedInitialSurvey
}

// NeedsPreSurvey reports whether the user must answer the pre-survey before
// viewing the company's page.
func NeedsPreSurvey(s *Snapshot, companySlug string) bool {
	if s == nil {
		return false
	}
	status, ok := s.CompanySurveys[companySlug]
	return !ok || !status.PreSubmitted
}

// NeedsPostSurvey reports whether the per-company follow-up is due. The
// pre-survey must have been submitted first; elapsed time counts from the
// first visit recorded at pre-survey submission.
func NeedsPostSurvey(s *Snapshot, companySlug string, now time.Time, t Thresholds) bool {
	if s == nil {
		return false
	}
	status, ok := s.CompanySurveys[companySlug]
	if !ok || !status.PreSubmitted || status.PostSubmitted {
		return false
	}
	if status.FirstVisitDate.IsZero() {
		return false
	}
	return now.Sub(status.FirstVisitDate) >= t.PostSurveyDelay
}

// NeedsGlobalPostSurvey reports whether the account-level follow-up is due.
func NeedsGlobalPostSurvey(s *Snapshot, now time.Time, t Thresholds) bool {
	if s == nil {
		return false
	}
	if s.SubmittedGlobalPostSurvey {
		return false
	}
	if s.FirstCompanyVisitDate.IsZero() {
		return false
	}
	return now.Sub(s.FirstCompanyVisitDate) >= t.GlobalSurveyDelay
}

// CompaniesNeedingPostSurvey lists every company whose post-survey is due,
// sorted for stable prompting order.
func CompaniesNeedingPostSurvey(s *Snapshot, now time.Time, t Thresholds) []string {
	if s == nil {
		return nil
	}
	var due []string
	for slug := range s.CompanySurveys {
		if NeedsPostSurvey(s, slug, now, t) {
			due = append(due, slug)
		}
	}
	sort.Strings(due)
	return due
}

// NormalizeTimestamp coerces the timestamp shapes found in legacy documents
// to a single instant. Stored values appear as native timestamps (decoded to
// time.Time), {seconds} objects written by older clients, ISO-8601 strings,
// or bare unix seconds.
func NormalizeTimestamp(v interface{}) (time.Time, bool) {
	switch ts := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if ts.IsZero() {
			return time.Time{}, false
		}
		return ts, true
	case *time.Time:
		if ts == nil || ts.IsZero() {
			return time.Time{}, false
		}
		return *ts, true
	case string:
		if ts == "" {
			return time.Time{}, false
		}
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			return t, true
		}
		if t, err := time.Parse("2006-01-02", ts); err == nil {
			return t, true
		}
		return time.Time{}, false
	case float64:
		return unixParts(int64(ts), 0)
	case int64:
		return unixParts(ts, 0)
	case int:
		return unixParts(int64(ts), 0)
	case map[string]interface{}:
		sec, ok := toInt64(ts["seconds"])
		if !ok {
			// some revisions wrote camel-cased keys
			sec, ok = toInt64(ts["Seconds"])
		}
		if !ok {
			return time.Time{}, false
		}
		nanos, _ := toInt64(ts["nanoseconds"])
		if nanos == 0 {
			nanos, _ = toInt64(ts["nanos"])
		}
		return unixParts(sec, nanos)
	default:
		return time.Time{}, false
	}
}

func unixParts(sec, nanos int64) (time.Time, bool) {
	if sec == 0 {
		return time.Time{}, false
	}
	return time.Unix(sec, nanos).UTC(), true
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

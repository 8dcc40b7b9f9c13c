package surveys

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ethical-careers/ethical-careers-backend/internal/companies"
)

const (
	usersCollection          = "users"
	statusCollection         = "surveyStatus"
	companySurveysCollection = "companySurveys"
	globalSurveysCollection  = "globalPostSurveys"
	signupSurveysCollection  = "signupSurvey"
)

// ErrPreSurveyRequired is returned when a post-survey arrives for a company
// whose pre-survey was never submitted.
var ErrPreSurveyRequired = errors.New("pre-survey has not been submitted for this company")

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

// GetSnapshot assembles the eligibility snapshot for a user. A missing
// profile yields (nil, nil); the evaluator treats nil as "never prompt".
func (r *Repo) GetSnapshot(ctx context.Context, uid string) (*Snapshot, error) {
	doc, err := r.fs.Collection(usersCollection).Doc(uid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", uid, err)
	}

	data := doc.Data()
	snap := &Snapshot{
		UserID:         uid,
		CompanySurveys: make(map[string]CompanySurveyStatus),
	}
	if b, ok := data["submittedInitialSurvey"].(bool); ok {
		snap.SubmittedInitialSurvey = b
	}
	if b, ok := data["submittedGlobalPostSurvey"].(bool); ok {
		snap.SubmittedGlobalPostSurvey = b
	}
	if t, ok := NormalizeTimestamp(data["firstCompanyVisitDate"]); ok {
		snap.FirstCompanyVisitDate = t
	}

	iter := r.fs.Collection(statusCollection).Where("userId", "==", uid).Documents(ctx)
	defer iter.Stop()
	for {
		d, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list survey status for %s: %w", uid, err)
		}
		snap.CompanySurveys[statusSlug(d)] = statusFromDoc(d)
	}

	// Profiles written before the per-company status records carried a
	// companySurveys map keyed by display name. Honor it until the backfill
	// has run.
	if legacy, ok := data["companySurveys"].(map[string]interface{}); ok {
		for name, raw := range legacy {
			slug := companies.Slugify(name)
			if _, exists := snap.CompanySurveys[slug]; exists {
				continue
			}
			if st, ok := legacyStatus(uid, slug, name, raw); ok {
				snap.CompanySurveys[slug] = st
			}
		}
	}

	return snap, nil
}

func statusSlug(d *firestore.DocumentSnapshot) string {
	if slug, ok := d.Data()["companySlug"].(string); ok && slug != "" {
		return slug
	}
	return d.Ref.ID
}

func statusFromDoc(d *firestore.DocumentSnapshot) CompanySurveyStatus {
	data := d.Data()
	st := CompanySurveyStatus{CompanySlug: statusSlug(d)}
	if v, ok := data["userId"].(string); ok {
		st.UserID = v
	}
	if v, ok := data["companyName"].(string); ok {
		st.CompanyName = v
	}
	if v, ok := data["preSubmitted"].(bool); ok {
		st.PreSubmitted = v
	}
	if v, ok := data["postSubmitted"].(bool); ok {
		st.PostSubmitted = v
	}
	if t, ok := NormalizeTimestamp(data["firstVisitDate"]); ok {
		st.FirstVisitDate = t
	}
	return st
}

func legacyStatus(uid, slug, name string, raw interface{}) (CompanySurveyStatus, bool) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return CompanySurveyStatus{}, false
	}
	st := CompanySurveyStatus{
		UserID:      uid,
		CompanySlug: slug,
		CompanyName: name,
	}
	if v, ok := m["preSubmitted"].(bool); ok {
		st.PreSubmitted = v
	}
	if v, ok := m["postSubmitted"].(bool); ok {
		st.PostSubmitted = v
	}
	if t, ok := NormalizeTimestamp(m["firstVisitDate"]); ok {
		st.FirstVisitDate = t
	}
	return st, true
}

func statusDocID(uid, slug string) string {
	return uid + "_" + slug
}

// SavePre writes the pre-survey response and creates the status record in
// one transaction. The profile's firstCompanyVisitDate is set only once.
func (r *Repo) SavePre(ctx context.Context, uid string, res PreSurveyResponse, now time.Time) error {
	userRef := r.fs.Collection(usersCollection).Doc(uid)
	statusRef := r.fs.Collection(statusCollection).Doc(statusDocID(uid, res.CompanySlug))
	responseRef := r.fs.Collection(companySurveysCollection).Doc(fmt.Sprintf("%s_%s_pre", uid, res.CompanySlug))

	err := r.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		userDoc, err := tx.Get(userRef)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}

		if err := tx.Set(responseRef, map[string]interface{}{
			"userId":          uid,
			"companySlug":     res.CompanySlug,
			"companyName":     res.CompanyName,
			"surveyType":      "pre",
			"overallEthical":  int(res.OverallEthical),
			"considerWorking": res.ConsiderWorking,
			"submittedAt":     firestore.ServerTimestamp,
		}); err != nil {
			return err
		}

		if err := tx.Set(statusRef, map[string]interface{}{
			"userId":         uid,
			"companySlug":    res.CompanySlug,
			"companyName":    res.CompanyName,
			"preSubmitted":   true,
			"postSubmitted":  false,
			"firstVisitDate": now,
			"updatedAt":      firestore.ServerTimestamp,
		}); err != nil {
			return err
		}

		profile := map[string]interface{}{"updatedAt": firestore.ServerTimestamp}
		if userDoc == nil || !userDoc.Exists() || userDoc.Data()["firstCompanyVisitDate"] == nil {
			profile["firstCompanyVisitDate"] = now
		}
		return tx.Set(userRef, profile, firestore.MergeAll)
	})
	if err != nil {
		return fmt.Errorf("save pre-survey: %w", err)
	}
	return nil
}

// SavePost writes the post-survey response and flips the status record's
// postSubmitted flag, refusing if the pre-survey never happened.
func (r *Repo) SavePost(ctx context.Context, uid string, res PostSurveyResponse) error {
	statusRef := r.fs.Collection(statusCollection).Doc(statusDocID(uid, res.CompanySlug))
	responseRef := r.fs.Collection(companySurveysCollection).Doc(fmt.Sprintf("%s_%s_post", uid, res.CompanySlug))

	err := r.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		statusDoc, err := tx.Get(statusRef)
		if status.Code(err) == codes.NotFound {
			return ErrPreSurveyRequired
		}
		if err != nil {
			return err
		}
		if pre, _ := statusDoc.Data()["preSubmitted"].(bool); !pre {
			return ErrPreSurveyRequired
		}

		if err := tx.Set(responseRef, map[string]interface{}{
			"userId":              uid,
			"companySlug":         res.CompanySlug,
			"companyName":         res.CompanyName,
			"surveyType":          "post",
			"summary":             res.Summary,
			"overallEthical":      int(res.OverallEthical),
			"considerWorking":     res.ConsiderWorking,
			"workersCommunities":  int(res.WorkersCommunities),
			"environmentalImpact": int(res.EnvironmentalImpact),
			"transparency":        int(res.Transparency),
			"trustStatements":     int(res.TrustStatements),
			"ethicalConcerns":     int(res.EthicalConcerns),
			"lookedUpEthics":      res.LookedUpEthics,
			"submittedAt":         firestore.ServerTimestamp,
		}); err != nil {
			return err
		}

		return tx.Set(statusRef, map[string]interface{}{
			"postSubmitted": true,
			"updatedAt":     firestore.ServerTimestamp,
		}, firestore.MergeAll)
	})
	if err != nil {
		if errors.Is(err, ErrPreSurveyRequired) {
			return ErrPreSurveyRequired
		}
		return fmt.Errorf("save post-survey: %w", err)
	}
	return nil
}

// SaveGlobal writes the account-level response and marks the profile. The
// flag is monotonic; it is never reset.
func (r *Repo) SaveGlobal(ctx context.Context, uid string, res GlobalSurveyResponse, now time.Time) error {
	responseRef := r.fs.Collection(globalSurveysCollection).Doc(fmt.Sprintf("%s_%d", uid, now.UnixMilli()))

	if _, err := responseRef.Set(ctx, map[string]interface{}{
		"userId":              uid,
		"summary":             res.Summary,
		"workersCommunities":  int(res.WorkersCommunities),
		"environmentalImpact": int(res.EnvironmentalImpact),
		"transparency":        int(res.Transparency),
		"trustStatements":     int(res.TrustStatements),
		"ethicalConcerns":     int(res.EthicalConcerns),
		"lookedUpEthics":      res.LookedUpEthics,
		"submittedAt":         firestore.ServerTimestamp,
	}); err != nil {
		return fmt.Errorf("save global survey response: %w", err)
	}

	if _, err := r.fs.Collection(usersCollection).Doc(uid).Set(ctx, map[string]interface{}{
		"submittedGlobalPostSurvey": true,
		"updatedAt":                 firestore.ServerTimestamp,
	}, firestore.MergeAll); err != nil {
		return fmt.Errorf("mark global survey submitted: %w", err)
	}
	return nil
}

// SaveSignup writes the initial survey response keyed by uid and marks the
// profile.
func (r *Repo) SaveSignup(ctx context.Context, uid string, res SignupSurveyResponse) error {
	if _, err := r.fs.Collection(signupSurveysCollection).Doc(uid).Set(ctx, map[string]interface{}{
		"userId":              uid,
		"workersCommunities":  int(res.WorkersCommunities),
		"environmentalImpact": int(res.EnvironmentalImpact),
		"transparency":        int(res.Transparency),
		"trustStatements":     int(res.TrustStatements),
		"ethicalConcerns":     int(res.EthicalConcerns),
		"lookedUpEthics":      res.LookedUpEthics,
		"submittedAt":         firestore.ServerTimestamp,
	}); err != nil {
		return fmt.Errorf("save signup survey response: %w", err)
	}

	if _, err := r.fs.Collection(usersCollection).Doc(uid).Set(ctx, map[string]interface{}{
		"submittedInitialSurvey": true,
		"updatedAt":              firestore.ServerTimestamp,
	}, firestore.MergeAll); err != nil {
		return fmt.Errorf("mark signup survey submitted: %w", err)
	}
	return nil
}

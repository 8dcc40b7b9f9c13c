package aggregate

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/ethical-careers/ethical-careers-backend/internal/companies"
	"github.com/ethical-careers/ethical-careers-backend/internal/reviews"
)

// Jobs holds the maintenance tasks the worker runs nightly: rating rollups
// and the backfills that migrate pre-slug data.
type Jobs struct {
	fs        *firestore.Client
	companies *companies.Repo
}

func NewJobs(fs *firestore.Client, companyRepo *companies.Repo) *Jobs {
	return &Jobs{fs: fs, companies: companyRepo}
}

// RunAll executes every job, continuing past individual failures.
func (j *Jobs) RunAll(ctx context.Context) {
	if err := j.BackfillReviewSlugs(ctx); err != nil {
		log.Printf("[worker] backfill review slugs: %v", err)
	}
	if err := j.MigrateLegacySurveyStatus(ctx); err != nil {
		log.Printf("[worker] migrate legacy survey status: %v", err)
	}
	if err := j.RecomputeCompanyRatings(ctx); err != nil {
		log.Printf("[worker] recompute company ratings: %v", err)
	}
	if err := j.PruneOrphanComments(ctx); err != nil {
		log.Printf("[worker] prune orphan comments: %v", err)
	}
}

// RecomputeCompanyRatings averages the three criterion ratings across all
// reviews of each company and stores the result on the company document.
func (j *Jobs) RecomputeCompanyRatings(ctx context.Context) error {
	sums := make(map[string]float64)
	counts := make(map[string]int)

	iter := j.fs.Collection("posts").Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("iterate reviews: %w", err)
		}

		var rev reviews.Review
		if err := doc.DataTo(&rev); err != nil {
			log.Printf("[worker] skip unreadable review %s: %v", doc.Ref.ID, err)
			continue
		}
		slug := rev.CompanySlug
		if slug == "" {
			slug = companies.Slugify(rev.Company)
		}
		if slug == "" {
			continue
		}
		sums[slug] += (float64(rev.PeopleRating) + float64(rev.PlanetRating) + float64(rev.TransparencyRating)) / 3
		counts[slug]++
	}

	for slug, sum := range sums {
		avg := sum / float64(counts[slug])
		if err := j.companies.SetAverageRating(ctx, slug, avg, counts[slug]); err != nil {
			log.Printf("[worker] set average for %s: %v", slug, err)
		}
	}
	log.Printf("[worker] recomputed ratings for %d companies", len(sums))
	return nil
}

// BackfillReviewSlugs stamps companySlug on reviews written before slugs
// became the canonical key.
func (j *Jobs) BackfillReviewSlugs(ctx context.Context) error {
	iter := j.fs.Collection("posts").Documents(ctx)
	defer iter.Stop()

	updated := 0
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("iterate reviews: %w", err)
		}

		data := doc.Data()
		if slug, _ := data["companySlug"].(string); slug != "" {
			continue
		}
		name, _ := data["company"].(string)
		slug := companies.Slugify(name)
		if slug == "" {
			continue
		}
		if _, err := doc.Ref.Set(ctx, map[string]interface{}{"companySlug": slug}, firestore.MergeAll); err != nil {
			log.Printf("[worker] backfill slug on %s: %v", doc.Ref.ID, err)
			continue
		}
		updated++
	}
	if updated > 0 {
		log.Printf("[worker] backfilled companySlug on %d reviews", updated)
	}
	return nil
}

// MigrateLegacySurveyStatus converts profile-embedded companySurveys maps
// into per-company surveyStatus documents. The map entry is left in place;
// the snapshot reader prefers the status document when both exist.
func (j *Jobs) MigrateLegacySurveyStatus(ctx context.Context) error {
	iter := j.fs.Collection("users").Documents(ctx)
	defer iter.Stop()

	migrated := 0
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("iterate users: %w", err)
		}

		legacy, ok := doc.Data()["companySurveys"].(map[string]interface{})
		if !ok || len(legacy) == 0 {
			continue
		}
		uid := doc.Ref.ID
		for name, raw := range legacy {
			entry, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			slug := companies.Slugify(name)
			if slug == "" {
				continue
			}
			statusRef := j.fs.Collection("surveyStatus").Doc(uid + "_" + slug)
			if _, err := statusRef.Get(ctx); err == nil {
				continue // already migrated
			}

			record := map[string]interface{}{
				"userId":      uid,
				"companySlug": slug,
				"companyName": name,
				"updatedAt":   firestore.ServerTimestamp,
			}
			if v, ok := entry["preSubmitted"].(bool); ok {
				record["preSubmitted"] = v
			}
			if v, ok := entry["postSubmitted"].(bool); ok {
				record["postSubmitted"] = v
			}
			if v, ok := entry["firstVisitDate"]; ok {
				record["firstVisitDate"] = v
			}
			if _, err := statusRef.Set(ctx, record); err != nil {
				log.Printf("[worker] migrate status %s/%s: %v", uid, slug, err)
				continue
			}
			migrated++
		}
	}
	if migrated > 0 {
		log.Printf("[worker] migrated %d legacy survey status entries", migrated)
	}
	return nil
}

// PruneOrphanComments deletes comments whose review no longer exists.
func (j *Jobs) PruneOrphanComments(ctx context.Context) error {
	iter := j.fs.Collection("comments").Documents(ctx)
	defer iter.Stop()

	// Review existence is checked once per distinct ID.
	known := make(map[string]bool)
	pruned := 0
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("iterate comments: %w", err)
		}

		reviewID, _ := doc.Data()["reviewId"].(string)
		if reviewID == "" {
			continue
		}
		exists, checked := known[reviewID]
		if !checked {
			_, err := j.fs.Collection("posts").Doc(reviewID).Get(ctx)
			exists = err == nil
			known[reviewID] = exists
		}
		if exists {
			continue
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			log.Printf("[worker] delete orphan comment %s: %v", doc.Ref.ID, err)
			continue
		}
		pruned++
	}
	if pruned > 0 {
		log.Printf("[worker] pruned %d orphaned comments", pruned)
	}
	return nil
}

package reviews

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const collection = "posts"

var (
	ErrNotFound  = errors.New("review not found")
	ErrForbidden = errors.New("not the review author")
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func decode(doc *firestore.DocumentSnapshot) (*Review, error) {
	var rev Review
	if err := doc.DataTo(&rev); err != nil {
		return nil, fmt.Errorf("decode review %s: %w", doc.Ref.ID, err)
	}
	rev.ID = doc.Ref.ID
	return &rev, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Review, error) {
	doc, err := r.fs.Collection(collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get review %s: %w", id, err)
	}
	return decode(doc)
}

// Upsert enforces one review per user per company: an existing review for
// the same (author, company) pair is updated in place, otherwise a new
// document is created.
func (r *Repo) Upsert(ctx context.Context, rev *Review) (*Review, error) {
	iter := r.fs.Collection(collection).
		Where("userId", "==", rev.UserID).
		Where("companySlug", "==", rev.CompanySlug).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	fields := map[string]interface{}{
		"companySlug":        rev.CompanySlug,
		"company":            rev.Company,
		"userId":             rev.UserID,
		"pseudonym":          rev.Pseudonym,
		"selfIdentify":       rev.SelfIdentify,
		"peopleText":         rev.PeopleText,
		"peopleRating":       int(rev.PeopleRating),
		"planetText":         rev.PlanetText,
		"planetRating":       int(rev.PlanetRating),
		"transparencyText":   rev.TransparencyText,
		"transparencyRating": int(rev.TransparencyRating),
		"recommend":          rev.Recommend,
		"references":         rev.References,
		"updatedAt":          firestore.ServerTimestamp,
	}

	existing, err := iter.Next()
	switch {
	case err == iterator.Done:
		fields["likes"] = 0
		fields["likedBy"] = []string{}
		fields["createdAt"] = firestore.ServerTimestamp
		ref := r.fs.Collection(collection).NewDoc()
		if _, err := ref.Set(ctx, fields); err != nil {
			return nil, fmt.Errorf("create review: %w", err)
		}
		rev.ID = ref.ID
	case err != nil:
		return nil, fmt.Errorf("find existing review: %w", err)
	default:
		if _, err := existing.Ref.Set(ctx, fields, firestore.MergeAll); err != nil {
			return nil, fmt.Errorf("update review %s: %w", existing.Ref.ID, err)
		}
		rev.ID = existing.Ref.ID
	}

	return rev, nil
}

func (r *Repo) collect(iter *firestore.DocumentIterator, op string) ([]Review, error) {
	defer iter.Stop()
	out := make([]Review, 0, 16)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		rev, err := decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, *rev)
	}
	return out, nil
}

func (r *Repo) ListByCompany(ctx context.Context, slug string) ([]Review, error) {
	iter := r.fs.Collection(collection).
		Where("companySlug", "==", slug).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	return r.collect(iter, "list reviews for "+slug)
}

func (r *Repo) ListAll(ctx context.Context) ([]Review, error) {
	iter := r.fs.Collection(collection).OrderBy("createdAt", firestore.Desc).Documents(ctx)
	return r.collect(iter, "list reviews")
}

func (r *Repo) ListByAuthor(ctx context.Context, uid string) ([]Review, error) {
	iter := r.fs.Collection(collection).Where("userId", "==", uid).Documents(ctx)
	return r.collect(iter, "list reviews by "+uid)
}

// ToggleLike adds or removes uid from likedBy and recomputes the counter in
// the same transaction, so likes always equals the set size.
func (r *Repo) ToggleLike(ctx context.Context, id, uid string) (*Review, error) {
	ref := r.fs.Collection(collection).Doc(id)
	var updated *Review

	err := r.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		rev, err := decode(doc)
		if err != nil {
			return err
		}

		likedBy := make([]string, 0, len(rev.LikedBy)+1)
		found := false
		for _, liker := range rev.LikedBy {
			if liker == uid {
				found = true
				continue
			}
			likedBy = append(likedBy, liker)
		}
		if !found {
			likedBy = append(likedBy, uid)
		}

		rev.LikedBy = likedBy
		rev.Likes = len(likedBy)
		updated = rev
		return tx.Set(ref, map[string]interface{}{
			"likedBy": likedBy,
			"likes":   len(likedBy),
		}, firestore.MergeAll)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("toggle like on %s: %w", id, err)
	}
	return updated, nil
}

// Delete removes the review if uid is its author. Comments are not cascaded
// here; the worker's cleanup pass removes orphans.
func (r *Repo) Delete(ctx context.Context, id, uid string) error {
	ref := r.fs.Collection(collection).Doc(id)

	err := r.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if author, _ := doc.Data()["userId"].(string); author != uid {
			return ErrForbidden
		}
		return tx.Delete(ref)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrForbidden) {
			return err
		}
		return fmt.Errorf("delete review %s: %w", id, err)
	}
	return nil
}

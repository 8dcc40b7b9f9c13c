package companies

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const collection = "companies"

var (
	ErrNotFound      = errors.New("company not found")
	ErrAlreadyExists = errors.New("company already exists")
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

// Create registers a company under its slug. Submitting an existing company
// is rejected rather than overwritten.
func (r *Repo) Create(ctx context.Context, name, industry, description string) (*Company, error) {
	if name == "" {
		return nil, fmt.Errorf("name required")
	}

	slug := Slugify(name)
	ref := r.fs.Collection(collection).Doc(slug)

	err := r.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		existing, err := tx.Get(ref)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
		if existing != nil && existing.Exists() {
			return ErrAlreadyExists
		}
		return tx.Set(ref, map[string]interface{}{
			"name":        name,
			"slug":        slug,
			"industry":    industry,
			"description": description,
			"createdAt":   firestore.ServerTimestamp,
		})
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("create company %s: %w", slug, err)
	}

	return &Company{Slug: slug, Name: name, Industry: industry, Description: description}, nil
}

func (r *Repo) Get(ctx context.Context, slug string) (*Company, error) {
	doc, err := r.fs.Collection(collection).Doc(slug).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get company %s: %w", slug, err)
	}

	var c Company
	if err := doc.DataTo(&c); err != nil {
		return nil, fmt.Errorf("decode company %s: %w", slug, err)
	}
	c.Slug = doc.Ref.ID
	return &c, nil
}

func (r *Repo) List(ctx context.Context) ([]Company, error) {
	iter := r.fs.Collection(collection).OrderBy("name", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	out := make([]Company, 0, 32)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list companies: %w", err)
		}
		var c Company
		if err := doc.DataTo(&c); err != nil {
			return nil, fmt.Errorf("decode company %s: %w", doc.Ref.ID, err)
		}
		c.Slug = doc.Ref.ID
		out = append(out, c)
	}
	return out, nil
}

// SetAverageRating is used by the worker's rating rollup.
func (r *Repo) SetAverageRating(ctx context.Context, slug string, avg float64, count int) error {
	_, err := r.fs.Collection(collection).Doc(slug).Set(ctx, map[string]interface{}{
		"averageRating": avg,
		"reviewCount":   count,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("set average rating for %s: %w", slug, err)
	}
	return nil
}

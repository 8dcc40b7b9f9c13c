package comments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const collection = "comments"

var (
	ErrNotFound  = errors.New("comment not found")
	ErrForbidden = errors.New("not the comment author")
)

// Comment belongs to exactly one review.
type Comment struct {
	ID        string    `firestore:"-" json:"id"`
	ReviewID  string    `firestore:"reviewId" json:"reviewId"`
	Text      string    `firestore:"text" json:"text"`
	UserID    string    `firestore:"userId" json:"userId"`
	Pseudonym string    `firestore:"pseudonym" json:"pseudonym"`
	Likes     int       `firestore:"likes" json:"likes"`
	LikedBy   []string  `firestore:"likedBy" json:"likedBy"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func decode(doc *firestore.DocumentSnapshot) (*Comment, error) {
	var cm Comment
	if err := doc.DataTo(&cm); err != nil {
		return nil, fmt.Errorf("decode comment %s: %w", doc.Ref.ID, err)
	}
	cm.ID = doc.Ref.ID
	return &cm, nil
}

func (r *Repo) Add(ctx context.Context, cm *Comment) (*Comment, error) {
	ref := r.fs.Collection(collection).NewDoc()
	if _, err := ref.Set(ctx, map[string]interface{}{
		"reviewId":  cm.ReviewID,
		"text":      strings.TrimSpace(cm.Text),
		"userId":    cm.UserID,
		"pseudonym": cm.Pseudonym,
		"likes":     0,
		"likedBy":   []string{},
		"createdAt": firestore.ServerTimestamp,
	}); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	cm.ID = ref.ID
	return cm, nil
}

func (r *Repo) collect(iter *firestore.DocumentIterator, op string) ([]Comment, error) {
	defer iter.Stop()
	out := make([]Comment, 0, 16)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		cm, err := decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, *cm)
	}
	return out, nil
}

func (r *Repo) ListByReview(ctx context.Context, reviewID string) ([]Comment, error) {
	iter := r.fs.Collection(collection).Where("reviewId", "==", reviewID).Documents(ctx)
	return r.collect(iter, "list comments for review "+reviewID)
}

func (r *Repo) ListByAuthor(ctx context.Context, uid string) ([]Comment, error) {
	iter := r.fs.Collection(collection).Where("userId", "==", uid).Documents(ctx)
	return r.collect(iter, "list comments by "+uid)
}

// ToggleLike keeps the counter equal to the liker set size by updating both
// in one transaction.
func (r *Repo) ToggleLike(ctx context.Context, id, uid string) (*Comment, error) {
	ref := r.fs.Collection(collection).Doc(id)
	var updated *Comment

	err := r.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		cm, err := decode(doc)
		if err != nil {
			return err
		}

		likedBy := make([]string, 0, len(cm.LikedBy)+1)
		found := false
		for _, liker := range cm.LikedBy {
			if liker == uid {
				found = true
				continue
			}
			likedBy = append(likedBy, liker)
		}
		if !found {
			likedBy = append(likedBy, uid)
		}

		cm.LikedBy = likedBy
		cm.Likes = len(likedBy)
		updated = cm
		return tx.Set(ref, map[string]interface{}{
			"likedBy": likedBy,
			"likes":   len(likedBy),
		}, firestore.MergeAll)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("toggle like on comment %s: %w", id, err)
	}
	return updated, nil
}

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
		return fmt.Errorf("delete comment %s: %w", id, err)
	}
	return nil
}

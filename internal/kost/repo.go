package kost

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

var ErrNotFound = errors.New("kost not found")

type CreateInput struct {
	Name       string   `json:"name"`
	Location   string   `json:"location"`
	City       string   `json:"city"`
	KostType   string   `json:"kost_type"`
	Price      float64  `json:"price"`
	Facilities []string `json:"facilities"`
}

func (r *Repo) Create(ctx context.Context, ownerID string, in CreateInput) (string, error) {
	if in.Name == "" {
		return "", fmt.Errorf("missing name")
	}
	if in.Price < 0 {
		return "", fmt.Errorf("invalid price: %v", in.Price)
	}
	id := uuid.NewString()
	_, err := r.DB.Exec(ctx, `
		INSERT INTO kosts(id, owner_id, name, location, city, kost_type, price, facilities)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, id, ownerID, in.Name, in.Location, in.City, in.KostType, in.Price, in.Facilities)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *Repo) Get(ctx context.Context, id string) (Kost, error) {
	k, err := scanKost(r.DB.QueryRow(ctx, `
		SELECT id, owner_id, name, location, city, kost_type, price, facilities, created_at, updated_at
		FROM kosts WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Kost{}, ErrNotFound
	} else if err != nil {
		return Kost{}, err
	}

	reviews, err := r.listReviews(ctx, `SELECT kost_id, reviewer, rating, comment, created_at
		FROM kost_reviews WHERE kost_id=$1 ORDER BY created_at, reviewer`, id)
	if err != nil {
		return Kost{}, err
	}
	k.Reviews = reviews[id]
	return k, nil
}

// ListByOwner memuat kost milik owner berikut review-nya (dua query, merge di sini).
func (r *Repo) ListByOwner(ctx context.Context, ownerID string) ([]Kost, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, owner_id, name, location, city, kost_type, price, facilities, created_at, updated_at
		FROM kosts WHERE owner_id=$1 ORDER BY created_at, id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Kost
	for rows.Next() {
		k, err := scanKost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	reviews, err := r.listReviews(ctx, `
		SELECT r.kost_id, r.reviewer, r.rating, r.comment, r.created_at
		FROM kost_reviews r JOIN kosts k ON k.id = r.kost_id
		WHERE k.owner_id=$1 ORDER BY r.created_at, r.reviewer`, ownerID)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Reviews = reviews[out[i].ID]
	}
	return out, nil
}

// AddReview: satu review per reviewer per kost (upsert).
func (r *Repo) AddReview(ctx context.Context, kostID string, rv Review) error {
	if rv.Rating < 1 || rv.Rating > 5 {
		return fmt.Errorf("invalid rating: %d", rv.Rating)
	}
	_, err := r.DB.Exec(ctx, `
		INSERT INTO kost_reviews(kost_id, reviewer, rating, comment)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (kost_id, reviewer)
		DO UPDATE SET rating=EXCLUDED.rating, comment=EXCLUDED.comment, created_at=now()
	`, kostID, rv.Reviewer, rv.Rating, rv.Comment)
	return err
}

func scanKost(row pgx.Row) (Kost, error) {
	var k Kost
	err := row.Scan(&k.ID, &k.OwnerID, &k.Name, &k.Location, &k.City, &k.KostType,
		&k.Price, &k.Facilities, &k.CreatedAt, &k.UpdatedAt)
	return k, err
}

func (r *Repo) listReviews(ctx context.Context, q string, arg any) (map[string][]Review, error) {
	rows, err := r.DB.Query(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string][]Review{}
	for rows.Next() {
		var kostID string
		var rv Review
		if err := rows.Scan(&kostID, &rv.Reviewer, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out[kostID] = append(out[kostID], rv)
	}
	return out, rows.Err()
}

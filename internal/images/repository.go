package images

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Repository caches generated image URLs by recipe title, so a recipe the
// service proposed before keeps its image across regenerations.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Save stores or refreshes the image URL for a recipe title.
func (r *Repository) Save(ctx context.Context, title, url string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO recipe_images (recipe_title, url, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(recipe_title) DO UPDATE SET
			url = excluded.url,
			created_at = excluded.created_at`,
		title, url, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save image for %q: %w", title, err)
	}
	return nil
}

// Lookup returns the known image URLs for the given titles. Titles without
// an image are simply absent from the result.
func (r *Repository) Lookup(ctx context.Context, titles []string) (map[string]string, error) {
	result := map[string]string{}
	for _, title := range titles {
		var url string
		err := r.db.QueryRowContext(ctx,
			`SELECT url FROM recipe_images WHERE recipe_title = ?`, title).Scan(&url)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to look up image for %q: %w", title, err)
		}
		result[title] = url
	}
	return result, nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostViews is the view count of one post.
type PostViews struct {
	Slug  string `json:"slug"`
	Count int64  `json:"count"`
}

// HitView increments and returns the view count for slug.
func (d *DB) HitView(ctx context.Context, slug string) (int64, error) {
	var count int64
	err := d.db.QueryRowContext(ctx, `
		INSERT INTO post_views (slug, count, updated_at) VALUES (?, 1, ?)
		ON CONFLICT(slug) DO UPDATE SET count = count + 1, updated_at = excluded.updated_at
		RETURNING count
	`, slug, d.stamp(d.now())).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("hit view %s: %w", slug, err)
	}
	return count, nil
}

// GetView returns the view count for slug; unseen slugs have zero views.
func (d *DB) GetView(ctx context.Context, slug string) (int64, error) {
	var count int64
	err := d.db.QueryRowContext(ctx, `SELECT count FROM post_views WHERE slug = ?`, slug).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get view %s: %w", slug, err)
	}
	return count, nil
}

// TopPosts returns the most viewed posts.
func (d *DB) TopPosts(ctx context.Context, limit int) ([]PostViews, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT slug, count FROM post_views
		ORDER BY count DESC, slug ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query top posts: %w", err)
	}
	defer rows.Close()

	var top []PostViews
	for rows.Next() {
		var pv PostViews
		if err := rows.Scan(&pv.Slug, &pv.Count); err != nil {
			return nil, fmt.Errorf("scan post views: %w", err)
		}
		top = append(top, pv)
	}
	return top, rows.Err()
}

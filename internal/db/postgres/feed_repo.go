package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"Quill/internal/core/feeds"
	"Quill/internal/core/posts"
)

// Shared SELECT for hydrated listing rows. All three listings order by
// created_at descending with id as the tiebreaker so pagination is
// reproducible when timestamps collide.
const feedSelect = `
	SELECT
		p.id, p.text, p.created_at,
		u.id, u.username,
		g.id, g.title, g.slug
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN groups g ON g.id = p.group_id
	%s
	ORDER BY p.created_at DESC, p.id DESC
	LIMIT $%d OFFSET $%d`

type postgresFeedRepo struct {
	db *sql.DB
}

// NewFeedRepository creates a new PostgreSQL listing repository
func NewFeedRepository(db *sql.DB) feeds.Repository {
	return &postgresFeedRepo{db: db}
}

// ListAll returns one page of the global feed plus the total post count
func (r *postgresFeedRepo) ListAll(ctx context.Context, limit, offset int) ([]*posts.PostView, int, error) {
	return r.list(ctx,
		`SELECT COUNT(*) FROM posts`,
		fmt.Sprintf(feedSelect, "", 1, 2),
		nil, limit, offset)
}

// ListByGroup returns one page of a group's posts plus the group's total
func (r *postgresFeedRepo) ListByGroup(ctx context.Context, groupID int64, limit, offset int) ([]*posts.PostView, int, error) {
	return r.list(ctx,
		`SELECT COUNT(*) FROM posts WHERE group_id = $1`,
		fmt.Sprintf(feedSelect, "WHERE p.group_id = $1", 2, 3),
		[]interface{}{groupID}, limit, offset)
}

// ListByAuthor returns one page of an author's posts plus the author's total
func (r *postgresFeedRepo) ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]*posts.PostView, int, error) {
	return r.list(ctx,
		`SELECT COUNT(*) FROM posts WHERE author_id = $1`,
		fmt.Sprintf(feedSelect, "WHERE p.author_id = $1", 2, 3),
		[]interface{}{authorID}, limit, offset)
}

// list runs the count query, then the page query. The count runs first so
// a page past the end still reports the correct total; the page query is
// skipped entirely when the offset is already beyond the result set.
func (r *postgresFeedRepo) list(
	ctx context.Context,
	countQuery, pageQuery string,
	filterArgs []interface{},
	limit, offset int,
) ([]*posts.PostView, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, filterArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	if offset >= total {
		return []*posts.PostView{}, total, nil
	}

	args := append(append([]interface{}{}, filterArgs...), limit, offset)
	rows, err := r.db.QueryContext(ctx, pageQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query feed page: %w", err)
	}
	defer rows.Close()

	views := make([]*posts.PostView, 0, limit)
	for rows.Next() {
		view, err := scanPostView(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan feed row: %w", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate feed rows: %w", err)
	}

	return views, total, nil
}

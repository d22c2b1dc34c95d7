package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"Quill/internal/core/posts"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// Create inserts a new post into the posts table.
// The database assigns id and created_at.
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) (*posts.Post, error) {
	query := `
		INSERT INTO posts (text, author_id, group_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	var groupID sql.NullInt64
	if post.GroupID != nil {
		groupID.Int64 = *post.GroupID
		groupID.Valid = true
	}

	err := r.db.QueryRowContext(ctx, query, post.Text, post.AuthorID, groupID).
		Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "violates foreign key constraint") {
			if strings.Contains(err.Error(), "fk_posts_author") {
				return nil, fmt.Errorf("author %d not found", post.AuthorID)
			}
			if strings.Contains(err.Error(), "fk_posts_group") {
				return nil, posts.ErrGroupNotFound
			}
		}
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}

	return post, nil
}

// GetByID retrieves a post row by identifier
func (r *postgresPostRepo) GetByID(ctx context.Context, id int64) (*posts.Post, error) {
	post := &posts.Post{}
	var groupID sql.NullInt64
	query := `SELECT id, text, author_id, group_id, created_at FROM posts WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&post.ID, &post.Text, &post.AuthorID, &groupID, &post.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	if groupID.Valid {
		post.GroupID = &groupID.Int64
	}

	return post, nil
}

// GetViewByID retrieves a hydrated post with author and group joined
func (r *postgresPostRepo) GetViewByID(ctx context.Context, id int64) (*posts.PostView, error) {
	query := `
		SELECT
			p.id, p.text, p.created_at,
			u.id, u.username,
			g.id, g.title, g.slug
		FROM posts p
		JOIN users u ON u.id = p.author_id
		LEFT JOIN groups g ON g.id = p.group_id
		WHERE p.id = $1`

	view, err := scanPostView(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post view: %w", err)
	}

	return view, nil
}

// Update writes text and group in a single statement.
// Author and created_at are deliberately absent from the SET list.
func (r *postgresPostRepo) Update(ctx context.Context, post *posts.Post) (*posts.Post, error) {
	query := `
		UPDATE posts
		SET text = $2, group_id = $3
		WHERE id = $1
		RETURNING id, text, author_id, group_id, created_at`

	var groupID sql.NullInt64
	if post.GroupID != nil {
		groupID.Int64 = *post.GroupID
		groupID.Valid = true
	}

	updated := &posts.Post{}
	var updatedGroupID sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, post.ID, post.Text, groupID).
		Scan(&updated.ID, &updated.Text, &updated.AuthorID, &updatedGroupID, &updated.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	if updatedGroupID.Valid {
		updated.GroupID = &updatedGroupID.Int64
	}

	return updated, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanPostView scans one hydrated post row.
// Group columns come from a LEFT JOIN and may all be NULL.
func scanPostView(row rowScanner) (*posts.PostView, error) {
	view := &posts.PostView{Author: &posts.AuthorRef{}}
	var groupID sql.NullInt64
	var groupTitle, groupSlug sql.NullString

	err := row.Scan(
		&view.ID, &view.Text, &view.CreatedAt,
		&view.Author.ID, &view.Author.Username,
		&groupID, &groupTitle, &groupSlug,
	)
	if err != nil {
		return nil, err
	}

	if groupID.Valid {
		view.Group = &posts.GroupRef{
			ID:    groupID.Int64,
			Title: groupTitle.String,
			Slug:  groupSlug.String,
		}
	}

	return view, nil
}

package posts

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"Quill/internal/core/access"
	"Quill/internal/core/groups"
)

// Global content limit for post text
const maxTextLength = 100000

type postService struct {
	repo         Repository
	groupService groups.Service
}

// NewPostService creates a new post authoring service
func NewPostService(repo Repository, groupService groups.Service) Service {
	return &postService{
		repo:         repo,
		groupService: groupService,
	}
}

// CreatePost validates and persists a new post.
// Flow: check requester identity -> validate text -> validate group reference
// -> insert. The row is visible in all matching listings as soon as the
// insert commits.
func (s *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	// The auth gate runs upstream, but the service re-checks the identity it
	// was handed the way it would for any other required field.
	if req.AuthorID == 0 {
		return nil, ErrAuthRequired
	}

	text, err := validateText(req.Text)
	if err != nil {
		return nil, err
	}

	if err := s.validateGroupRef(ctx, req.GroupID); err != nil {
		return nil, err
	}

	post, err := s.repo.Create(ctx, &Post{
		Text:     text,
		AuthorID: req.AuthorID,
		GroupID:  req.GroupID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

// EditPost validates an edit and applies it in place.
// Flow: load post -> access decision -> validate text/group -> single UPDATE.
// Nothing is written unless every check passes.
func (s *postService) EditPost(ctx context.Context, req EditPostRequest) (*Post, error) {
	post, err := s.repo.GetByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load post: %w", err)
	}

	switch access.Decide(req.RequesterID, post.AuthorID) {
	case access.Anonymous:
		return nil, ErrAuthRequired
	case access.NonOwner:
		log.Printf("[POST-EDIT] Denied: requester %d is not author of post %d", req.RequesterID, post.ID)
		return nil, ErrNotAuthor
	}

	text, err := validateText(req.Text)
	if err != nil {
		return nil, err
	}

	if err := s.validateGroupRef(ctx, req.GroupID); err != nil {
		return nil, err
	}

	post.Text = text
	post.GroupID = req.GroupID

	updated, err := s.repo.Update(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return updated, nil
}

func (s *postService) GetPost(ctx context.Context, id int64) (*PostView, error) {
	return s.repo.GetViewByID(ctx, id)
}

// validateText rejects empty or whitespace-only text and enforces the
// global length limit. Returns the trimmed text.
func validateText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", NewValidationError("text", "text is required")
	}
	if len(trimmed) > maxTextLength {
		return "", NewValidationError("text", fmt.Sprintf("text too long (max %d characters)", maxTextLength))
	}
	return trimmed, nil
}

// validateGroupRef checks that a supplied group identifier references an
// existing group. A nil group is always valid: posts may be unassigned.
func (s *postService) validateGroupRef(ctx context.Context, groupID *int64) error {
	if groupID == nil {
		return nil
	}
	if _, err := s.groupService.GetByID(ctx, *groupID); err != nil {
		if errors.Is(err, groups.ErrGroupNotFound) {
			return NewValidationError("group", fmt.Sprintf("group %d does not exist", *groupID))
		}
		return fmt.Errorf("failed to resolve group: %w", err)
	}
	return nil
}

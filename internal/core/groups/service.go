package groups

import (
	"context"
	"fmt"
	"strings"
)

const (
	maxTitleLength = 200
	maxSlugLength  = 100
)

type groupService struct {
	repo Repository
}

// NewGroupService creates a new group service
func NewGroupService(repo Repository) Service {
	return &groupService{repo: repo}
}

// CreateGroup validates and persists a new group
func (s *groupService) CreateGroup(ctx context.Context, req CreateGroupRequest) (*Group, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	group, err := s.repo.Create(ctx, &Group{
		Title:       strings.TrimSpace(req.Title),
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}

	return group, nil
}

func (s *groupService) GetBySlug(ctx context.Context, slug string) (*Group, error) {
	if slug == "" {
		return nil, NewValidationError("slug", "slug is required")
	}
	return s.repo.GetBySlug(ctx, slug)
}

func (s *groupService) GetByID(ctx context.Context, id int64) (*Group, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *groupService) ListGroups(ctx context.Context) ([]*Group, error) {
	return s.repo.List(ctx)
}

func validateCreateRequest(req CreateGroupRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return NewValidationError("title", "title is required")
	}
	if len(req.Title) > maxTitleLength {
		return NewValidationError("title", fmt.Sprintf("title too long (max %d characters)", maxTitleLength))
	}
	if req.Slug == "" {
		return NewValidationError("slug", "slug is required")
	}
	if len(req.Slug) > maxSlugLength {
		return NewValidationError("slug", fmt.Sprintf("slug too long (max %d characters)", maxSlugLength))
	}
	// URL-safe slug: lowercase letters, digits, hyphens
	for _, c := range req.Slug {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '-':
		default:
			return NewValidationError("slug", "slug may only contain lowercase letters, digits, and hyphens")
		}
	}
	return nil
}

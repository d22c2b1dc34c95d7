package feeds

import (
	"context"
	"errors"
	"fmt"

	"Quill/internal/core/groups"
	"Quill/internal/core/posts"
	"Quill/internal/core/users"
)

type feedService struct {
	repo         Repository
	groupService groups.Service
	userService  users.Service
	pageSize     int
}

// NewFeedService creates a new listing service.
// pageSize is the fixed number of posts per page; values below 1 fall back
// to DefaultPageSize.
func NewFeedService(
	repo Repository,
	groupService groups.Service,
	userService users.Service,
	pageSize int,
) Service {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &feedService{
		repo:         repo,
		groupService: groupService,
		userService:  userService,
		pageSize:     pageSize,
	}
}

// ListAll returns a page of the global feed
func (s *feedService) ListAll(ctx context.Context, page int) (*Page, error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}

	views, total, err := s.repo.ListAll(ctx, s.pageSize, s.offset(page))
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return s.page(views, page, total), nil
}

// ListByGroup returns a page of posts in a group, resolved by slug
func (s *feedService) ListByGroup(ctx context.Context, slug string, page int) (*GroupPage, error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}

	group, err := s.groupService.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, groups.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}
		if groups.IsValidationError(err) {
			return nil, NewValidationError("group", err.Error())
		}
		return nil, fmt.Errorf("failed to resolve group: %w", err)
	}

	views, total, err := s.repo.ListByGroup(ctx, group.ID, s.pageSize, s.offset(page))
	if err != nil {
		return nil, fmt.Errorf("failed to list group posts: %w", err)
	}

	return &GroupPage{
		Group: &GroupInfo{
			ID:          group.ID,
			Title:       group.Title,
			Slug:        group.Slug,
			Description: group.Description,
		},
		Page: *s.page(views, page, total),
	}, nil
}

// ListByAuthor returns a page of posts by a user, resolved by username
func (s *feedService) ListByAuthor(ctx context.Context, username string, page int) (*AuthorPage, error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}

	author, err := s.userService.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve author: %w", err)
	}

	views, total, err := s.repo.ListByAuthor(ctx, author.ID, s.pageSize, s.offset(page))
	if err != nil {
		return nil, fmt.Errorf("failed to list author posts: %w", err)
	}

	return &AuthorPage{
		Author: &AuthorInfo{
			ID:       author.ID,
			Username: author.Username,
		},
		Page: *s.page(views, page, total),
	}, nil
}

func (s *feedService) offset(page int) int {
	return (page - 1) * s.pageSize
}

func (s *feedService) page(views []*posts.PostView, number, total int) *Page {
	if views == nil {
		views = []*posts.PostView{}
	}
	return &Page{
		Posts:      views,
		Number:     number,
		Size:       s.pageSize,
		TotalCount: total,
	}
}

func validatePage(page int) error {
	if page < 1 {
		return NewValidationError("page", "page must be 1 or greater")
	}
	return nil
}

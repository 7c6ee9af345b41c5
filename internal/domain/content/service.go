package content

import (
	"context"
	"fmt"
	"time"

	"showhome/internal/pkg/validator"
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetPage(ctx context.Context, slug string) (*Page, error) {
	return s.repo.GetPage(ctx, slug)
}

func (s *Service) SavePage(ctx context.Context, page Page) (*Page, error) {
	if fields := validator.Validate(page); fields != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, fields)
	}
	page.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpsertPage(ctx, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListServices returns service cards in display order. Public callers
// see only active cards; admins see everything.
func (s *Service) ListServices(ctx context.Context, includeInactive bool) ([]ServiceCard, error) {
	return s.repo.ListServices(ctx, !includeInactive)
}

func (s *Service) CreateService(ctx context.Context, card ServiceCard) (*ServiceCard, error) {
	if fields := validator.Validate(card); fields != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, fields)
	}
	card.ID = 0
	card.UpdatedAt = time.Now().UTC()
	if err := s.repo.CreateService(ctx, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (s *Service) UpdateService(ctx context.Context, id int64, update ServiceCard) (*ServiceCard, error) {
	card, err := s.repo.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	card.Title = update.Title
	card.Summary = update.Summary
	card.Icon = update.Icon
	card.SortOrder = update.SortOrder
	card.IsActive = update.IsActive
	card.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateService(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *Service) DeleteService(ctx context.Context, id int64) error {
	return s.repo.DeleteService(ctx, id)
}

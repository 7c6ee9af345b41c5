package content

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetPage(ctx context.Context, slug string) (*Page, error) {
	var page Page
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&page).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// UpsertPage inserts or replaces the page stored under its slug.
func (r *Repository) UpsertPage(ctx context.Context, page *Page) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			UpdateAll: true,
		}).
		Create(page).Error
}

func (r *Repository) ListServices(ctx context.Context, activeOnly bool) ([]ServiceCard, error) {
	var cards []ServiceCard
	q := r.db.WithContext(ctx).Order("sort_order asc, id asc")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *Repository) GetService(ctx context.Context, id int64) (*ServiceCard, error) {
	var card ServiceCard
	err := r.db.WithContext(ctx).First(&card, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *Repository) CreateService(ctx context.Context, card *ServiceCard) error {
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *Repository) UpdateService(ctx context.Context, card *ServiceCard) error {
	return r.db.WithContext(ctx).Save(card).Error
}

func (r *Repository) DeleteService(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&ServiceCard{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrServiceNotFound
	}
	return nil
}

package content

import "time"

// Page is a block of static site text addressed by slug (home intro,
// about, gallery blurb).
type Page struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Slug      string    `json:"slug" gorm:"uniqueIndex" validate:"required"`
	Title     string    `json:"title"`
	Sections  []Section `json:"sections" gorm:"serializer:json"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Page) TableName() string { return "pages" }

// Section is one titled text block within a page.
type Section struct {
	Heading string `json:"heading,omitempty"`
	Body    string `json:"body"`
}

// ServiceCard is one entry on the services grid.
type ServiceCard struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" validate:"required"`
	Summary   string    `json:"summary"`
	Icon      string    `json:"icon,omitempty"`
	SortOrder int       `json:"sort_order"`
	IsActive  bool      `json:"is_active"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ServiceCard) TableName() string { return "service_cards" }

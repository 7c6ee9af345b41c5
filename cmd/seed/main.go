package main

import (
	"log"
	"os"

	"showhome/internal/database"
	"showhome/internal/domain/content"

	"gorm.io/gorm/clause"
)

// Seeds default CMS content for local development.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "showhome.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	pages := []content.Page{
		{
			Slug:  "home",
			Title: "Welcome",
			Sections: []content.Section{
				{Heading: "Built Around You", Body: "Quality craftsmanship on every project, large or small."},
				{Heading: "See Your Project", Body: "Enter your customer code on the gallery page to follow progress photos and videos."},
			},
		},
		{
			Slug:  "about",
			Title: "About Us",
			Sections: []content.Section{
				{Body: "A family-run firm serving the region for over two decades."},
			},
		},
	}
	for _, p := range pages {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			UpdateAll: true,
		}).Create(&p).Error; err != nil {
			log.Fatalf("seed page %s: %v", p.Slug, err)
		}
	}

	cards := []content.ServiceCard{
		{Title: "New Builds", Summary: "Ground-up construction managed end to end.", Icon: "home", SortOrder: 1, IsActive: true},
		{Title: "Renovations", Summary: "Kitchens, bathrooms and whole-house remodels.", Icon: "hammer", SortOrder: 2, IsActive: true},
		{Title: "Exteriors", Summary: "Siding, roofing, decks and outdoor living.", Icon: "sun", SortOrder: 3, IsActive: true},
	}
	db.Exec("DELETE FROM service_cards")
	for i := range cards {
		if err := db.Create(&cards[i]).Error; err != nil {
			log.Fatalf("seed service card: %v", err)
		}
	}

	log.Printf("seeded %d pages and %d service cards", len(pages), len(cards))
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// Seed inserts sample events into an empty events table. It is a no-op when
// seeding is disabled or the table already has rows.
func Seed(ctx context.Context, db *sql.DB, enabled bool) error {
	if !enabled {
		return nil
	}

	queries := New(db)

	count, err := queries.CountEvents(ctx)
	if err != nil {
		return fmt.Errorf("counting events: %w", err)
	}
	if count > 0 {
		slog.Info("events table already populated, skipping seed", "count", count)
		return nil
	}

	samples := []CreateEventParams{
		{
			Title:         "Summer Jazz Festival",
			Description:   "An evening of smooth jazz with local and touring artists",
			Location:      "Riverside Park Amphitheater",
			EventDate:     "2024-07-15 19:00:00",
			Category:      "music",
			ImageGradient: "linear-gradient(45deg, #667eea, #764ba2)",
			PostedBy:      "EventPro",
		},
		{
			Title:         "Food Truck Friday",
			Description:   "Over 20 food trucks serving diverse cuisines",
			Location:      "Downtown Square",
			EventDate:     "2024-07-12 17:00:00",
			Category:      "food",
			ImageGradient: "linear-gradient(45deg, #f093fb, #f5576c)",
			PostedBy:      "CityEvents",
		},
		{
			Title:         "Local Art Exhibition",
			Description:   "Featuring works by emerging local artists",
			Location:      "Community Arts Center",
			EventDate:     "2024-07-20 10:00:00",
			Category:      "art",
			ImageGradient: "linear-gradient(45deg, #4facfe, #00f2fe)",
			PostedBy:      "ArtLover",
		},
		{
			Title:         "Morning Yoga in the Park",
			Description:   "Free community yoga session for all levels",
			Location:      "Central Park Pavilion",
			EventDate:     "2024-07-13 08:00:00",
			Category:      "community",
			ImageGradient: "linear-gradient(45deg, #43e97b, #38f9d7)",
			PostedBy:      "YogaCommunity",
		},
		{
			Title:         "Basketball Tournament",
			Description:   "3v3 street basketball tournament with prizes",
			Location:      "Community Recreation Center",
			EventDate:     "2024-07-16 14:00:00",
			Category:      "sports",
			ImageGradient: "linear-gradient(45deg, #fa709a, #fee140)",
			PostedBy:      "SportsClub",
		},
		{
			Title:         "Poetry Open Mic Night",
			Description:   "Share your poetry or enjoy performances by others",
			Location:      "The Coffee House",
			EventDate:     "2024-07-18 19:30:00",
			Category:      "art",
			ImageGradient: "linear-gradient(45deg, #a8edea, #fed6e3)",
			PostedBy:      "PoetryGroup",
		},
	}

	now := time.Now()
	for _, sample := range samples {
		sample.CreatedAt = now
		sample.UpdatedAt = now
		if _, err := queries.CreateEvent(ctx, sample); err != nil {
			return fmt.Errorf("seeding event %q: %w", sample.Title, err)
		}
	}

	slog.Info("seeded sample events", "count", len(samples))
	return nil
}

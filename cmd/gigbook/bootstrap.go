package main

import (
	"context"
	"database/sql"
	"fmt"

	"gigbook/internal/store"
)

// bootstrapDemoData seeds the directory with sample venues, artists, and
// shows on first run. It is a no-op once any venue exists.
func bootstrapDemoData(ctx context.Context, db *sql.DB, dataStore *store.Store) error {
	venuesTableExists, err := tableExists(ctx, db, "venues")
	if err != nil {
		return fmt.Errorf("check venues table: %w", err)
	}
	if !venuesTableExists {
		return nil
	}

	var count int
	if err := db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM venues
	`).Scan(&count); err != nil {
		return fmt.Errorf("count venues: %w", err)
	}
	if count > 0 {
		return nil
	}

	seedVenues := []store.Venue{
		{
			Name:               "The Musical Hop",
			Genres:             []string{"Jazz", "Reggae", "Swing", "Classical", "Folk"},
			City:               "San Francisco",
			State:              "CA",
			Address:            "1015 Folsom Street",
			Phone:              "123-123-1234",
			Website:            "https://www.themusicalhop.com",
			FacebookLink:       "https://www.facebook.com/TheMusicalHop",
			SeekingTalent:      true,
			SeekingDescription: "We are on the lookout for a local artist to play every two weeks. Please call us.",
		},
		{
			Name:         "The Dueling Pianos Bar",
			Genres:       []string{"Classical", "R&B", "Hip-Hop"},
			City:         "New York",
			State:        "NY",
			Address:      "335 Delancey Street",
			Phone:        "914-003-1132",
			Website:      "https://www.theduelingpianos.com",
			FacebookLink: "https://www.facebook.com/theduelingpianos",
		},
		{
			Name:         "Park Square Live Music & Coffee",
			Genres:       []string{"Rock n Roll", "Jazz", "Classical", "Folk"},
			City:         "San Francisco",
			State:        "CA",
			Address:      "34 Whiskey Moore Ave",
			Phone:        "415-000-1234",
			Website:      "https://www.parksquarelivemusicandcoffee.com",
			FacebookLink: "https://www.facebook.com/ParkSquareLiveMusicAndCoffee",
		},
	}

	venueIDs := make([]int64, 0, len(seedVenues))
	for _, venue := range seedVenues {
		created, err := dataStore.CreateVenue(ctx, venue)
		if err != nil {
			return fmt.Errorf("seed venue %q: %w", venue.Name, err)
		}
		venueIDs = append(venueIDs, created.ID)
	}

	seedArtists := []store.Artist{
		{
			Name:               "Guns N Petals",
			Genres:             []string{"Rock n Roll"},
			City:               "San Francisco",
			State:              "CA",
			Phone:              "326-123-5000",
			Website:            "https://www.gunsnpetalsband.com",
			FacebookLink:       "https://www.facebook.com/GunsNPetals",
			SeekingVenue:       true,
			SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
		},
		{
			Name:   "Matt Quevedo",
			Genres: []string{"Jazz"},
			City:   "New York",
			State:  "NY",
			Phone:  "300-400-5000",
		},
		{
			Name:   "The Wild Sax Band",
			Genres: []string{"Jazz", "Classical"},
			City:   "San Francisco",
			State:  "CA",
			Phone:  "432-325-5432",
		},
	}

	artistIDs := make([]int64, 0, len(seedArtists))
	for _, artist := range seedArtists {
		created, err := dataStore.CreateArtist(ctx, artist)
		if err != nil {
			return fmt.Errorf("seed artist %q: %w", artist.Name, err)
		}
		artistIDs = append(artistIDs, created.ID)
	}

	seedShows := []store.ShowInput{
		{ArtistID: artistIDs[0], VenueID: venueIDs[0], StartTime: "2019-05-21T21:30:00Z"},
		{ArtistID: artistIDs[1], VenueID: venueIDs[2], StartTime: "2019-06-15T23:00:00Z"},
		{ArtistID: artistIDs[2], VenueID: venueIDs[2], StartTime: "2035-04-01T20:00:00Z"},
		{ArtistID: artistIDs[2], VenueID: venueIDs[2], StartTime: "2035-04-08T20:00:00Z"},
		{ArtistID: artistIDs[2], VenueID: venueIDs[2], StartTime: "2035-04-15T20:00:00Z"},
	}

	for _, input := range seedShows {
		if _, err := dataStore.CreateShow(ctx, input); err != nil {
			return fmt.Errorf("seed show: %w", err)
		}
	}

	return nil
}

func tableExists(ctx context.Context, db *sql.DB, table string) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)
	`, table).Scan(&exists)
	return exists, err
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Show is a booking linking one artist to one venue at a specific time.
// Shows are immutable once created and disappear only through the cascade
// when their venue or artist is deleted.
type Show struct {
	ID        int64     `json:"id"`
	ArtistID  int64     `json:"artistId"`
	VenueID   int64     `json:"venueId"`
	StartTime time.Time `json:"startTime"`
}

// ShowInput carries the raw booking form fields. The start time arrives as
// the string submitted by the form and is parsed by the store.
type ShowInput struct {
	ArtistID  int64  `json:"artistId"`
	VenueID   int64  `json:"venueId"`
	StartTime string `json:"startTime"`
}

// ShowDetail is a show enriched with its venue and artist.
type ShowDetail struct {
	ID              int64     `json:"id"`
	VenueID         int64     `json:"venueId"`
	VenueName       string    `json:"venueName"`
	ArtistID        int64     `json:"artistId"`
	ArtistName      string    `json:"artistName"`
	ArtistImageLink string    `json:"artistImageLink"`
	StartTime       time.Time `json:"startTime"`
}

// CreateShow books an artist into a venue. Both references are verified
// inside the same transaction as the insert, so a show row can never be
// persisted against a missing artist or venue.
func (s *Store) CreateShow(ctx context.Context, input ShowInput) (Show, error) {
	var fields []string
	if input.ArtistID <= 0 {
		fields = append(fields, "artist_id")
	}
	if input.VenueID <= 0 {
		fields = append(fields, "venue_id")
	}
	startTime, err := parseStartTime(input.StartTime)
	if err != nil {
		fields = append(fields, "start_time")
	}
	if len(fields) > 0 {
		return Show{}, &ValidationError{Fields: fields}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Show{}, storageErr("begin tx", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	var refID int64
	err = tx.QueryRowContext(ctx, `
		SELECT id
		FROM artists
		WHERE id = $1
	`, input.ArtistID).Scan(&refID)
	if errors.Is(err, sql.ErrNoRows) {
		return Show{}, &ValidationError{Fields: []string{"artist_id"}}
	}
	if err != nil {
		return Show{}, storageErr("check artist", err)
	}

	err = tx.QueryRowContext(ctx, `
		SELECT id
		FROM venues
		WHERE id = $1
	`, input.VenueID).Scan(&refID)
	if errors.Is(err, sql.ErrNoRows) {
		return Show{}, &ValidationError{Fields: []string{"venue_id"}}
	}
	if err != nil {
		return Show{}, storageErr("check venue", err)
	}

	show := Show{
		ArtistID:  input.ArtistID,
		VenueID:   input.VenueID,
		StartTime: startTime,
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO shows (artist_id, venue_id, start_time)
		VALUES ($1, $2, $3)
		RETURNING id
	`, show.ArtistID, show.VenueID, show.StartTime).Scan(&show.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return Show{}, &ValidationError{Fields: []string{"artist_id", "venue_id"}}
		}
		return Show{}, storageErr("insert show", err)
	}

	if err := tx.Commit(); err != nil {
		return Show{}, storageErr("commit tx", err)
	}
	tx = nil

	return show, nil
}

// ListShows returns every show ordered by ascending start time, enriched
// with venue and artist details. A show whose venue or artist is missing
// means the cascade invariant was broken, which surfaces as an
// IntegrityError instead of silently dropping the row.
func (s *Store) ListShows(ctx context.Context) ([]ShowDetail, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sh.id, sh.venue_id, v.name, sh.artist_id, a.name, a.image_link, sh.start_time
		FROM shows sh
		LEFT JOIN venues v ON v.id = sh.venue_id
		LEFT JOIN artists a ON a.id = sh.artist_id
		ORDER BY sh.start_time ASC, sh.id ASC
	`)
	if err != nil {
		return nil, storageErr("select shows", err)
	}
	defer rows.Close()

	var shows []ShowDetail
	for rows.Next() {
		var (
			show                             ShowDetail
			venueName, artistName, artistImg sql.NullString
		)
		if err := rows.Scan(&show.ID, &show.VenueID, &venueName,
			&show.ArtistID, &artistName, &artistImg, &show.StartTime); err != nil {
			return nil, storageErr("scan show", err)
		}
		if !venueName.Valid {
			return nil, &IntegrityError{ShowID: show.ID, Missing: "venue"}
		}
		if !artistName.Valid {
			return nil, &IntegrityError{ShowID: show.ID, Missing: "artist"}
		}
		show.VenueName = venueName.String
		show.ArtistName = artistName.String
		show.ArtistImageLink = artistImg.String
		shows = append(shows, show)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate shows", err)
	}

	return shows, nil
}

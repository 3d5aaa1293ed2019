package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// ErrArtistNotFound signals a missing artist record.
var ErrArtistNotFound = errors.New("artist not found")

// Artist models a performer who can be booked into shows.
type Artist struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Genres             []string  `json:"genres"`
	City               string    `json:"city"`
	State              string    `json:"state"`
	Phone              string    `json:"phone"`
	Website            string    `json:"website"`
	ImageLink          string    `json:"imageLink"`
	FacebookLink       string    `json:"facebookLink"`
	SeekingVenue       bool      `json:"seekingVenue"`
	SeekingDescription string    `json:"seekingDescription"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// ArtistSummary is a listing row with the artist's upcoming-show count.
type ArtistSummary struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	UpcomingShows int    `json:"upcomingShows"`
}

// ArtistShow is a show by an artist enriched with venue details.
type ArtistShow struct {
	ShowID         int64     `json:"showId"`
	VenueID        int64     `json:"venueId"`
	VenueName      string    `json:"venueName"`
	VenueImageLink string    `json:"venueImageLink"`
	StartTime      time.Time `json:"startTime"`
}

// ArtistDetail is an artist plus their shows partitioned around the current time.
type ArtistDetail struct {
	Artist
	PastShows     []ArtistShow `json:"pastShows"`
	UpcomingShows []ArtistShow `json:"upcomingShows"`
}

func validateArtist(artist Artist) error {
	var fields []string
	if strings.TrimSpace(artist.Name) == "" {
		fields = append(fields, "name")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// CreateArtist validates and persists a new artist, returning it with its
// assigned id.
func (s *Store) CreateArtist(ctx context.Context, artist Artist) (Artist, error) {
	if err := validateArtist(artist); err != nil {
		return Artist{}, err
	}

	artist.Name = strings.TrimSpace(artist.Name)
	artist.Genres = genresOrEmpty(artist.Genres)

	genresJSON, err := json.Marshal(artist.Genres)
	if err != nil {
		return Artist{}, storageErr("prepare genres payload", err)
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO artists (name, genres, city, state, phone, website,
		                     image_link, facebook_link, seeking_venue, seeking_description)
		VALUES ($1, $2::jsonb, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, artist.Name, string(genresJSON), artist.City, artist.State, artist.Phone,
		artist.Website, artist.ImageLink, artist.FacebookLink,
		artist.SeekingVenue, artist.SeekingDescription,
	).Scan(&artist.ID, &artist.CreatedAt, &artist.UpdatedAt)
	if err != nil {
		return Artist{}, storageErr("insert artist", err)
	}

	return artist, nil
}

// ListArtists returns every artist ordered by name.
func (s *Store) ListArtists(ctx context.Context) ([]ArtistSummary, error) {
	now := s.now().UTC()

	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.name,
		       (SELECT COUNT(*) FROM shows sh WHERE sh.artist_id = a.id AND sh.start_time > $1) AS upcoming
		FROM artists a
		ORDER BY a.name ASC, a.id ASC
	`, now)
	if err != nil {
		return nil, storageErr("select artists", err)
	}
	defer rows.Close()

	var artists []ArtistSummary
	for rows.Next() {
		var summary ArtistSummary
		if err := rows.Scan(&summary.ID, &summary.Name, &summary.UpcomingShows); err != nil {
			return nil, storageErr("scan artist", err)
		}
		artists = append(artists, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate artists", err)
	}

	return artists, nil
}

// SearchArtists returns the artists whose name contains term, matched
// case-insensitively with LIKE metacharacters in term taken literally. An
// empty term matches every artist.
func (s *Store) SearchArtists(ctx context.Context, term string) ([]ArtistSummary, error) {
	now := s.now().UTC()
	pattern := "%" + escapeLike(term) + "%"

	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.name,
		       (SELECT COUNT(*) FROM shows sh WHERE sh.artist_id = a.id AND sh.start_time > $2) AS upcoming
		FROM artists a
		WHERE a.name ILIKE $1 ESCAPE '\'
		ORDER BY a.name ASC, a.id ASC
	`, pattern, now)
	if err != nil {
		return nil, storageErr("search artists", err)
	}
	defer rows.Close()

	var artists []ArtistSummary
	for rows.Next() {
		var summary ArtistSummary
		if err := rows.Scan(&summary.ID, &summary.Name, &summary.UpcomingShows); err != nil {
			return nil, storageErr("scan artist", err)
		}
		artists = append(artists, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate artists", err)
	}

	return artists, nil
}

// ArtistByID retrieves a single artist.
func (s *Store) ArtistByID(ctx context.Context, id int64) (Artist, error) {
	var (
		artist     Artist
		genresJSON []byte
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, genres, city, state, phone, website,
		       image_link, facebook_link, seeking_venue, seeking_description,
		       created_at, updated_at
		FROM artists
		WHERE id = $1
	`, id).Scan(&artist.ID, &artist.Name, &genresJSON, &artist.City, &artist.State,
		&artist.Phone, &artist.Website, &artist.ImageLink, &artist.FacebookLink,
		&artist.SeekingVenue, &artist.SeekingDescription,
		&artist.CreatedAt, &artist.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Artist{}, ErrArtistNotFound
	}
	if err != nil {
		return Artist{}, storageErr("select artist", err)
	}

	if err := json.Unmarshal(genresJSON, &artist.Genres); err != nil {
		return Artist{}, storageErr("decode genres", err)
	}

	return artist, nil
}

// ArtistDetail retrieves an artist together with their past and upcoming
// shows, each enriched with the hosting venue. A show starting exactly at
// the current instant lands in neither list.
func (s *Store) ArtistDetail(ctx context.Context, id int64) (ArtistDetail, error) {
	artist, err := s.ArtistByID(ctx, id)
	if err != nil {
		return ArtistDetail{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT sh.id, sh.venue_id, v.name, v.image_link, sh.start_time
		FROM shows sh
		INNER JOIN venues v ON v.id = sh.venue_id
		WHERE sh.artist_id = $1
		ORDER BY sh.start_time ASC, sh.id ASC
	`, id)
	if err != nil {
		return ArtistDetail{}, storageErr("select artist shows", err)
	}
	defer rows.Close()

	detail := ArtistDetail{
		Artist:        artist,
		PastShows:     []ArtistShow{},
		UpcomingShows: []ArtistShow{},
	}

	now := s.now().UTC()
	for rows.Next() {
		var show ArtistShow
		if err := rows.Scan(&show.ShowID, &show.VenueID, &show.VenueName,
			&show.VenueImageLink, &show.StartTime); err != nil {
			return ArtistDetail{}, storageErr("scan artist show", err)
		}
		switch {
		case show.StartTime.Before(now):
			detail.PastShows = append(detail.PastShows, show)
		case show.StartTime.After(now):
			detail.UpcomingShows = append(detail.UpcomingShows, show)
		}
	}
	if err := rows.Err(); err != nil {
		return ArtistDetail{}, storageErr("iterate artist shows", err)
	}

	return detail, nil
}

// UpdateArtist replaces the mutable fields of an existing artist in place.
// The artist's id never changes and no new row is ever created.
func (s *Store) UpdateArtist(ctx context.Context, id int64, artist Artist) (Artist, error) {
	if err := validateArtist(artist); err != nil {
		return Artist{}, err
	}

	artist.Name = strings.TrimSpace(artist.Name)
	artist.Genres = genresOrEmpty(artist.Genres)

	genresJSON, err := json.Marshal(artist.Genres)
	if err != nil {
		return Artist{}, storageErr("prepare genres payload", err)
	}

	err = s.db.QueryRowContext(ctx, `
		UPDATE artists
		SET name = $1, genres = $2::jsonb, city = $3, state = $4, phone = $5,
		    website = $6, image_link = $7, facebook_link = $8,
		    seeking_venue = $9, seeking_description = $10, updated_at = CURRENT_TIMESTAMP
		WHERE id = $11
		RETURNING id, created_at, updated_at
	`, artist.Name, string(genresJSON), artist.City, artist.State, artist.Phone,
		artist.Website, artist.ImageLink, artist.FacebookLink,
		artist.SeekingVenue, artist.SeekingDescription, id,
	).Scan(&artist.ID, &artist.CreatedAt, &artist.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Artist{}, ErrArtistNotFound
	}
	if err != nil {
		return Artist{}, storageErr("update artist", err)
	}

	return artist, nil
}

// DeleteArtist removes an artist and every show booked for them as one
// atomic unit.
func (s *Store) DeleteArtist(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin tx", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM shows
		WHERE artist_id = $1
	`, id); err != nil {
		return storageErr("delete artist shows", err)
	}

	result, err := tx.ExecContext(ctx, `
		DELETE FROM artists
		WHERE id = $1
	`, id)
	if err != nil {
		return storageErr("delete artist", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storageErr("delete artist", err)
	}
	if rows == 0 {
		return ErrArtistNotFound
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit tx", err)
	}
	tx = nil

	return nil
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// ErrVenueNotFound signals a missing venue record.
var ErrVenueNotFound = errors.New("venue not found")

// Venue models a place that hosts shows.
type Venue struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Genres             []string  `json:"genres"`
	City               string    `json:"city"`
	State              string    `json:"state"`
	Address            string    `json:"address"`
	Phone              string    `json:"phone"`
	Website            string    `json:"website"`
	ImageLink          string    `json:"imageLink"`
	FacebookLink       string    `json:"facebookLink"`
	SeekingTalent      bool      `json:"seekingTalent"`
	SeekingDescription string    `json:"seekingDescription"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// VenueSummary is a listing row with the venue's own upcoming-show count.
type VenueSummary struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	UpcomingShows int    `json:"upcomingShows"`
}

// VenueGroup collects the venues sharing a (city, state) pair.
type VenueGroup struct {
	City   string         `json:"city"`
	State  string         `json:"state"`
	Venues []VenueSummary `json:"venues"`
}

// VenueShow is a show at a venue enriched with artist details.
type VenueShow struct {
	ShowID          int64     `json:"showId"`
	ArtistID        int64     `json:"artistId"`
	ArtistName      string    `json:"artistName"`
	ArtistImageLink string    `json:"artistImageLink"`
	StartTime       time.Time `json:"startTime"`
}

// VenueDetail is a venue plus its shows partitioned around the current time.
type VenueDetail struct {
	Venue
	PastShows     []VenueShow `json:"pastShows"`
	UpcomingShows []VenueShow `json:"upcomingShows"`
}

func validateVenue(venue Venue) error {
	var fields []string
	if strings.TrimSpace(venue.Name) == "" {
		fields = append(fields, "name")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// CreateVenue validates and persists a new venue, returning it with its
// assigned id.
func (s *Store) CreateVenue(ctx context.Context, venue Venue) (Venue, error) {
	if err := validateVenue(venue); err != nil {
		return Venue{}, err
	}

	venue.Name = strings.TrimSpace(venue.Name)
	venue.Genres = genresOrEmpty(venue.Genres)

	genresJSON, err := json.Marshal(venue.Genres)
	if err != nil {
		return Venue{}, storageErr("prepare genres payload", err)
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO venues (name, genres, city, state, address, phone, website,
		                    image_link, facebook_link, seeking_talent, seeking_description)
		VALUES ($1, $2::jsonb, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`, venue.Name, string(genresJSON), venue.City, venue.State, venue.Address,
		venue.Phone, venue.Website, venue.ImageLink, venue.FacebookLink,
		venue.SeekingTalent, venue.SeekingDescription,
	).Scan(&venue.ID, &venue.CreatedAt, &venue.UpdatedAt)
	if err != nil {
		return Venue{}, storageErr("insert venue", err)
	}

	return venue, nil
}

// VenuesByLocation returns every venue grouped by its (city, state) pair.
// Group order and within-group order follow the query's ORDER BY, so repeated
// calls over the same data produce identical results.
func (s *Store) VenuesByLocation(ctx context.Context) ([]VenueGroup, error) {
	now := s.now().UTC()

	rows, err := s.db.QueryContext(ctx, `
		SELECT v.id, v.name, v.city, v.state,
		       (SELECT COUNT(*) FROM shows sh WHERE sh.venue_id = v.id AND sh.start_time > $1) AS upcoming
		FROM venues v
		ORDER BY v.state ASC, v.city ASC, v.name ASC, v.id ASC
	`, now)
	if err != nil {
		return nil, storageErr("select venues", err)
	}
	defer rows.Close()

	var groups []VenueGroup
	for rows.Next() {
		var (
			summary     VenueSummary
			city, state string
		)
		if err := rows.Scan(&summary.ID, &summary.Name, &city, &state, &summary.UpcomingShows); err != nil {
			return nil, storageErr("scan venue", err)
		}
		n := len(groups)
		if n == 0 || groups[n-1].City != city || groups[n-1].State != state {
			groups = append(groups, VenueGroup{City: city, State: state})
			n++
		}
		groups[n-1].Venues = append(groups[n-1].Venues, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate venues", err)
	}

	return groups, nil
}

// SearchVenues returns the venues whose name contains term, matched
// case-insensitively with LIKE metacharacters in term taken literally. An
// empty term matches every venue.
func (s *Store) SearchVenues(ctx context.Context, term string) ([]VenueSummary, error) {
	now := s.now().UTC()
	pattern := "%" + escapeLike(term) + "%"

	rows, err := s.db.QueryContext(ctx, `
		SELECT v.id, v.name,
		       (SELECT COUNT(*) FROM shows sh WHERE sh.venue_id = v.id AND sh.start_time > $2) AS upcoming
		FROM venues v
		WHERE v.name ILIKE $1 ESCAPE '\'
		ORDER BY v.name ASC, v.id ASC
	`, pattern, now)
	if err != nil {
		return nil, storageErr("search venues", err)
	}
	defer rows.Close()

	var venues []VenueSummary
	for rows.Next() {
		var summary VenueSummary
		if err := rows.Scan(&summary.ID, &summary.Name, &summary.UpcomingShows); err != nil {
			return nil, storageErr("scan venue", err)
		}
		venues = append(venues, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate venues", err)
	}

	return venues, nil
}

// VenueByID retrieves a single venue.
func (s *Store) VenueByID(ctx context.Context, id int64) (Venue, error) {
	var (
		venue      Venue
		genresJSON []byte
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, genres, city, state, address, phone, website,
		       image_link, facebook_link, seeking_talent, seeking_description,
		       created_at, updated_at
		FROM venues
		WHERE id = $1
	`, id).Scan(&venue.ID, &venue.Name, &genresJSON, &venue.City, &venue.State,
		&venue.Address, &venue.Phone, &venue.Website, &venue.ImageLink,
		&venue.FacebookLink, &venue.SeekingTalent, &venue.SeekingDescription,
		&venue.CreatedAt, &venue.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Venue{}, ErrVenueNotFound
	}
	if err != nil {
		return Venue{}, storageErr("select venue", err)
	}

	if err := json.Unmarshal(genresJSON, &venue.Genres); err != nil {
		return Venue{}, storageErr("decode genres", err)
	}

	return venue, nil
}

// VenueDetail retrieves a venue together with its past and upcoming shows,
// each enriched with the booked artist. A show starting exactly at the
// current instant lands in neither list.
func (s *Store) VenueDetail(ctx context.Context, id int64) (VenueDetail, error) {
	venue, err := s.VenueByID(ctx, id)
	if err != nil {
		return VenueDetail{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT sh.id, sh.artist_id, a.name, a.image_link, sh.start_time
		FROM shows sh
		INNER JOIN artists a ON a.id = sh.artist_id
		WHERE sh.venue_id = $1
		ORDER BY sh.start_time ASC, sh.id ASC
	`, id)
	if err != nil {
		return VenueDetail{}, storageErr("select venue shows", err)
	}
	defer rows.Close()

	detail := VenueDetail{
		Venue:         venue,
		PastShows:     []VenueShow{},
		UpcomingShows: []VenueShow{},
	}

	now := s.now().UTC()
	for rows.Next() {
		var show VenueShow
		if err := rows.Scan(&show.ShowID, &show.ArtistID, &show.ArtistName,
			&show.ArtistImageLink, &show.StartTime); err != nil {
			return VenueDetail{}, storageErr("scan venue show", err)
		}
		switch {
		case show.StartTime.Before(now):
			detail.PastShows = append(detail.PastShows, show)
		case show.StartTime.After(now):
			detail.UpcomingShows = append(detail.UpcomingShows, show)
		}
	}
	if err := rows.Err(); err != nil {
		return VenueDetail{}, storageErr("iterate venue shows", err)
	}

	return detail, nil
}

// UpdateVenue replaces the mutable fields of an existing venue in place. The
// venue's id never changes and no new row is ever created.
func (s *Store) UpdateVenue(ctx context.Context, id int64, venue Venue) (Venue, error) {
	if err := validateVenue(venue); err != nil {
		return Venue{}, err
	}

	venue.Name = strings.TrimSpace(venue.Name)
	venue.Genres = genresOrEmpty(venue.Genres)

	genresJSON, err := json.Marshal(venue.Genres)
	if err != nil {
		return Venue{}, storageErr("prepare genres payload", err)
	}

	err = s.db.QueryRowContext(ctx, `
		UPDATE venues
		SET name = $1, genres = $2::jsonb, city = $3, state = $4, address = $5,
		    phone = $6, website = $7, image_link = $8, facebook_link = $9,
		    seeking_talent = $10, seeking_description = $11, updated_at = CURRENT_TIMESTAMP
		WHERE id = $12
		RETURNING id, created_at, updated_at
	`, venue.Name, string(genresJSON), venue.City, venue.State, venue.Address,
		venue.Phone, venue.Website, venue.ImageLink, venue.FacebookLink,
		venue.SeekingTalent, venue.SeekingDescription, id,
	).Scan(&venue.ID, &venue.CreatedAt, &venue.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Venue{}, ErrVenueNotFound
	}
	if err != nil {
		return Venue{}, storageErr("update venue", err)
	}

	return venue, nil
}

// DeleteVenue removes a venue and every show booked at it as one atomic unit.
func (s *Store) DeleteVenue(ctx context.Context, id int64) error {
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
		WHERE venue_id = $1
	`, id); err != nil {
		return storageErr("delete venue shows", err)
	}

	result, err := tx.ExecContext(ctx, `
		DELETE FROM venues
		WHERE id = $1
	`, id)
	if err != nil {
		return storageErr("delete venue", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storageErr("delete venue", err)
	}
	if rows == 0 {
		return ErrVenueNotFound
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit tx", err)
	}
	tx = nil

	return nil
}

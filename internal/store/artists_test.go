package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCreateArtistSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO artists (name, genres, city, state, phone, website,
		                     image_link, facebook_link, seeking_venue, seeking_description)
		VALUES ($1, $2::jsonb, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`)).
		WithArgs("Guns N Petals", `["Rock n Roll"]`, "San Francisco", "CA",
			"326-123-5000", "https://www.gunsnpetalsband.com", "",
			"https://www.facebook.com/GunsNPetals", true, "Looking for shows to perform.").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(4), created, created))

	artist, err := s.CreateArtist(context.Background(), Artist{
		Name:               "Guns N Petals",
		Genres:             []string{"Rock n Roll"},
		City:               "San Francisco",
		State:              "CA",
		Phone:              "326-123-5000",
		Website:            "https://www.gunsnpetalsband.com",
		FacebookLink:       "https://www.facebook.com/GunsNPetals",
		SeekingVenue:       true,
		SeekingDescription: "Looking for shows to perform.",
	})
	if err != nil {
		t.Fatalf("CreateArtist error: %v", err)
	}

	if artist.ID != 4 {
		t.Fatalf("expected artist ID 4, got %d", artist.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateArtistMissingName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	_, err = s.CreateArtist(context.Background(), Artist{City: "New York"})

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no database calls expected: %v", err)
	}
}

func TestSearchArtistsLowercasesNothing(t *testing.T) {
	// Case folding happens in the database via ILIKE; the term travels as is.
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)
	fixedNow := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixedNow }

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT a.id, a.name,
		       (SELECT COUNT(*) FROM shows sh WHERE sh.artist_id = a.id AND sh.start_time > $2) AS upcoming
		FROM artists a
		WHERE a.name ILIKE $1 ESCAPE '\'
		ORDER BY a.name ASC, a.id ASC
	`)).
		WithArgs("%Band%", fixedNow).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "upcoming"}).
			AddRow(int64(6), "The Wild Sax Band", 3))

	artists, err := s.SearchArtists(context.Background(), "Band")
	if err != nil {
		t.Fatalf("SearchArtists error: %v", err)
	}

	if len(artists) != 1 || artists[0].UpcomingShows != 3 {
		t.Fatalf("unexpected results: %+v", artists)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateArtistMutatesExistingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	updated := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`
		UPDATE artists
		SET name = $1, genres = $2::jsonb, city = $3, state = $4, phone = $5,
		    website = $6, image_link = $7, facebook_link = $8,
		    seeking_venue = $9, seeking_description = $10, updated_at = CURRENT_TIMESTAMP
		WHERE id = $11
		RETURNING id, created_at, updated_at
	`)).
		WithArgs("Matt Quevedo", `["Jazz"]`, "New York", "NY", "300-400-5000",
			"", "", "", false, "", int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(5), created, updated))

	artist, err := s.UpdateArtist(context.Background(), 5, Artist{
		Name:   "Matt Quevedo",
		Genres: []string{"Jazz"},
		City:   "New York",
		State:  "NY",
		Phone:  "300-400-5000",
	})
	if err != nil {
		t.Fatalf("UpdateArtist error: %v", err)
	}

	if artist.ID != 5 {
		t.Fatalf("expected artist ID 5 preserved, got %d", artist.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateArtistNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		UPDATE artists
		SET name = $1, genres = $2::jsonb, city = $3, state = $4, phone = $5,
		    website = $6, image_link = $7, facebook_link = $8,
		    seeking_venue = $9, seeking_description = $10, updated_at = CURRENT_TIMESTAMP
		WHERE id = $11
		RETURNING id, created_at, updated_at
	`)).
		WithArgs("Nobody", `[]`, "", "", "", "", "", "", false, "", int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err = s.UpdateArtist(context.Background(), 404, Artist{Name: "Nobody"})
	if !errors.Is(err, ErrArtistNotFound) {
		t.Fatalf("expected ErrArtistNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestArtistDetailBoundaryExcluded(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)
	fixedNow := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixedNow }

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, name, genres, city, state, phone, website,
		       image_link, facebook_link, seeking_venue, seeking_description,
		       created_at, updated_at
		FROM artists
		WHERE id = $1
	`)).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "genres", "city", "state", "phone", "website",
			"image_link", "facebook_link", "seeking_venue", "seeking_description",
			"created_at", "updated_at",
		}).AddRow(int64(4), "Guns N Petals", `["Rock n Roll"]`, "San Francisco",
			"CA", "", "", "", "", false, "", created, created))

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT sh.id, sh.venue_id, v.name, v.image_link, sh.start_time
		FROM shows sh
		INNER JOIN venues v ON v.id = sh.venue_id
		WHERE sh.artist_id = $1
		ORDER BY sh.start_time ASC, sh.id ASC
	`)).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "venue_id", "name", "image_link", "start_time"}).
			AddRow(int64(20), int64(1), "The Musical Hop", "", fixedNow))

	detail, err := s.ArtistDetail(context.Background(), 4)
	if err != nil {
		t.Fatalf("ArtistDetail error: %v", err)
	}

	if len(detail.PastShows) != 0 || len(detail.UpcomingShows) != 0 {
		t.Fatalf("show at the current instant should be in neither list: past=%v upcoming=%v",
			detail.PastShows, detail.UpcomingShows)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteArtistCascades(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`
		DELETE FROM shows
		WHERE artist_id = $1
	`)).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`
		DELETE FROM artists
		WHERE id = $1
	`)).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := s.DeleteArtist(context.Background(), 4); err != nil {
		t.Fatalf("DeleteArtist error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

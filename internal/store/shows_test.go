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

func TestParseStartTime(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr bool
	}{
		{
			name: "rfc3339",
			raw:  "2026-09-01T20:00:00Z",
			want: time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC),
		},
		{
			name: "rfc3339 with offset",
			raw:  "2026-09-01T20:00:00-04:00",
			want: time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "form layout",
			raw:  "2026-09-01 20:00:00",
			want: time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC),
		},
		{
			name: "surrounding whitespace",
			raw:  "  2026-09-01T20:00:00  ",
			want: time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC),
		},
		{
			name:    "garbage",
			raw:     "next friday",
			wantErr: true,
		},
		{
			name:    "empty",
			raw:     "",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseStartTime(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error but got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseStartTime error: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestCreateShowSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	startTime := time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id
		FROM artists
		WHERE id = $1
	`)).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(4)))
	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id
		FROM venues
		WHERE id = $1
	`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO shows (artist_id, venue_id, start_time)
		VALUES ($1, $2, $3)
		RETURNING id
	`)).
		WithArgs(int64(4), int64(1), startTime).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(30)))
	mock.ExpectCommit()

	show, err := s.CreateShow(context.Background(), ShowInput{
		ArtistID:  4,
		VenueID:   1,
		StartTime: "2026-09-01T20:00:00Z",
	})
	if err != nil {
		t.Fatalf("CreateShow error: %v", err)
	}

	if show.ID != 30 {
		t.Fatalf("expected show ID 30, got %d", show.ID)
	}
	if !show.StartTime.Equal(startTime) {
		t.Fatalf("expected start time %v, got %v", startTime, show.StartTime)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateShowDanglingArtist(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id
		FROM artists
		WHERE id = $1
	`)).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err = s.CreateShow(context.Background(), ShowInput{
		ArtistID:  404,
		VenueID:   1,
		StartTime: "2026-09-01T20:00:00Z",
	})

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(validationErr.Fields) != 1 || validationErr.Fields[0] != "artist_id" {
		t.Fatalf("expected artist_id flagged, got %v", validationErr.Fields)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateShowBadStartTime(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	_, err = s.CreateShow(context.Background(), ShowInput{
		ArtistID:  4,
		VenueID:   1,
		StartTime: "soon",
	})

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(validationErr.Fields) != 1 || validationErr.Fields[0] != "start_time" {
		t.Fatalf("expected start_time flagged, got %v", validationErr.Fields)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no database calls expected: %v", err)
	}
}

func TestListShowsOrderedWithDetails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	first := time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC)
	second := time.Date(2026, 9, 2, 20, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT sh.id, sh.venue_id, v.name, sh.artist_id, a.name, a.image_link, sh.start_time
		FROM shows sh
		LEFT JOIN venues v ON v.id = sh.venue_id
		LEFT JOIN artists a ON a.id = sh.artist_id
		ORDER BY sh.start_time ASC, sh.id ASC
	`)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "venue_id", "venue_name", "artist_id", "artist_name", "artist_image_link", "start_time",
		}).
			AddRow(int64(30), int64(1), "The Musical Hop", int64(4), "Guns N Petals", "", first).
			AddRow(int64(31), int64(2), "Park Square Live Music & Coffee", int64(5), "Matt Quevedo", "", second))

	shows, err := s.ListShows(context.Background())
	if err != nil {
		t.Fatalf("ListShows error: %v", err)
	}

	if len(shows) != 2 {
		t.Fatalf("expected 2 shows, got %d", len(shows))
	}
	if shows[0].ID != 30 || shows[0].VenueName != "The Musical Hop" || shows[0].ArtistName != "Guns N Petals" {
		t.Fatalf("unexpected first show: %+v", shows[0])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListShowsDanglingReferenceIsIntegrityError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT sh.id, sh.venue_id, v.name, sh.artist_id, a.name, a.image_link, sh.start_time
		FROM shows sh
		LEFT JOIN venues v ON v.id = sh.venue_id
		LEFT JOIN artists a ON a.id = sh.artist_id
		ORDER BY sh.start_time ASC, sh.id ASC
	`)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "venue_id", "venue_name", "artist_id", "artist_name", "artist_image_link", "start_time",
		}).AddRow(int64(30), int64(1), nil, int64(4), "Guns N Petals", "",
			time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC)))

	_, err = s.ListShows(context.Background())

	var integrityErr *IntegrityError
	if !errors.As(err, &integrityErr) {
		t.Fatalf("expected IntegrityError, got %v", err)
	}
	if integrityErr.ShowID != 30 || integrityErr.Missing != "venue" {
		t.Fatalf("unexpected integrity error: %+v", integrityErr)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

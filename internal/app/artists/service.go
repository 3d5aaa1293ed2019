package artists

import (
	"context"

	"gigbook/internal/store"
)

// Store defines persistence operations for artists
type Store interface {
	CreateArtist(ctx context.Context, artist store.Artist) (store.Artist, error)
	ListArtists(ctx context.Context) ([]store.ArtistSummary, error)
	SearchArtists(ctx context.Context, term string) ([]store.ArtistSummary, error)
	ArtistDetail(ctx context.Context, id int64) (store.ArtistDetail, error)
	UpdateArtist(ctx context.Context, id int64, artist store.Artist) (store.Artist, error)
	DeleteArtist(ctx context.Context, id int64) error
}

// Service coordinates artist-related operations
type Service interface {
	Create(ctx context.Context, artist store.Artist) (store.Artist, error)
	List(ctx context.Context) ([]store.ArtistSummary, error)
	Search(ctx context.Context, term string) ([]store.ArtistSummary, error)
	Get(ctx context.Context, id int64) (store.ArtistDetail, error)
	Update(ctx context.Context, id int64, artist store.Artist) (store.Artist, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	store Store
}

// New constructs an artists Service
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, artist store.Artist) (store.Artist, error) {
	if err := ctx.Err(); err != nil {
		return store.Artist{}, err
	}
	return s.store.CreateArtist(ctx, artist)
}

func (s *service) List(ctx context.Context) ([]store.ArtistSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListArtists(ctx)
}

func (s *service) Search(ctx context.Context, term string) ([]store.ArtistSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.SearchArtists(ctx, term)
}

func (s *service) Get(ctx context.Context, id int64) (store.ArtistDetail, error) {
	if err := ctx.Err(); err != nil {
		return store.ArtistDetail{}, err
	}
	return s.store.ArtistDetail(ctx, id)
}

func (s *service) Update(ctx context.Context, id int64, artist store.Artist) (store.Artist, error) {
	if err := ctx.Err(); err != nil {
		return store.Artist{}, err
	}
	return s.store.UpdateArtist(ctx, id, artist)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteArtist(ctx, id)
}

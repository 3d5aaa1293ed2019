package venues

import (
	"context"

	"gigbook/internal/store"
)

// Store defines persistence operations for venues
type Store interface {
	CreateVenue(ctx context.Context, venue store.Venue) (store.Venue, error)
	VenuesByLocation(ctx context.Context) ([]store.VenueGroup, error)
	SearchVenues(ctx context.Context, term string) ([]store.VenueSummary, error)
	VenueDetail(ctx context.Context, id int64) (store.VenueDetail, error)
	UpdateVenue(ctx context.Context, id int64, venue store.Venue) (store.Venue, error)
	DeleteVenue(ctx context.Context, id int64) error
}

// Service coordinates venue-related operations
type Service interface {
	Create(ctx context.Context, venue store.Venue) (store.Venue, error)
	ListByLocation(ctx context.Context) ([]store.VenueGroup, error)
	Search(ctx context.Context, term string) ([]store.VenueSummary, error)
	Get(ctx context.Context, id int64) (store.VenueDetail, error)
	Update(ctx context.Context, id int64, venue store.Venue) (store.Venue, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	store Store
}

// New constructs a venues Service
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, venue store.Venue) (store.Venue, error) {
	if err := ctx.Err(); err != nil {
		return store.Venue{}, err
	}
	return s.store.CreateVenue(ctx, venue)
}

func (s *service) ListByLocation(ctx context.Context) ([]store.VenueGroup, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.VenuesByLocation(ctx)
}

func (s *service) Search(ctx context.Context, term string) ([]store.VenueSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.SearchVenues(ctx, term)
}

func (s *service) Get(ctx context.Context, id int64) (store.VenueDetail, error) {
	if err := ctx.Err(); err != nil {
		return store.VenueDetail{}, err
	}
	return s.store.VenueDetail(ctx, id)
}

func (s *service) Update(ctx context.Context, id int64, venue store.Venue) (store.Venue, error) {
	if err := ctx.Err(); err != nil {
		return store.Venue{}, err
	}
	return s.store.UpdateVenue(ctx, id, venue)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteVenue(ctx, id)
}

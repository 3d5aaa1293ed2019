package shows

import (
	"context"

	"gigbook/internal/store"
)

// Store defines persistence operations for shows
type Store interface {
	CreateShow(ctx context.Context, input store.ShowInput) (store.Show, error)
	ListShows(ctx context.Context) ([]store.ShowDetail, error)
}

// Service coordinates show booking operations
type Service interface {
	Create(ctx context.Context, input store.ShowInput) (store.Show, error)
	List(ctx context.Context) ([]store.ShowDetail, error)
}

type service struct {
	store Store
}

// New constructs a shows Service
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, input store.ShowInput) (store.Show, error) {
	if err := ctx.Err(); err != nil {
		return store.Show{}, err
	}
	return s.store.CreateShow(ctx, input)
}

func (s *service) List(ctx context.Context) ([]store.ShowDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListShows(ctx)
}

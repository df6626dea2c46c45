package mocks

import (
	"context"

	"github.com/cinetix/ticketing/internal/domain"
)

type MockMovieLookup struct {
	domain.MovieLookup
	GetByIDFunc func(ctx context.Context, id int64) (*domain.Movie, error)
}

func (m *MockMovieLookup) GetByID(ctx context.Context, id int64) (*domain.Movie, error) {
	return m.GetByIDFunc(ctx, id)
}

type MockTheaterLookup struct {
	domain.TheaterLookup
	GetByIDFunc   func(ctx context.Context, id int64) (*domain.Theater, error)
	GetByNameFunc func(ctx context.Context, name string) (*domain.Theater, error)
}

func (m *MockTheaterLookup) GetByID(ctx context.Context, id int64) (*domain.Theater, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *MockTheaterLookup) GetByName(ctx context.Context, name string) (*domain.Theater, error) {
	return m.GetByNameFunc(ctx, name)
}

type MockUserLookup struct {
	domain.UserLookup
	GetIDByNameFunc func(ctx context.Context, firstName, lastName string) (string, error)
}

func (m *MockUserLookup) GetIDByName(ctx context.Context, firstName, lastName string) (string, error) {
	return m.GetIDByNameFunc(ctx, firstName, lastName)
}

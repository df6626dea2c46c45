package mocks

import (
	"context"

	"github.com/cinetix/ticketing/internal/domain"
)

type MockShowtimeRepo struct {
	domain.ShowtimeRepository
	CreateFunc  func(ctx context.Context, showtime *domain.Showtime) error
	UpdateFunc  func(ctx context.Context, showtime *domain.Showtime) error
	DeleteFunc  func(ctx context.Context, id int64) error
	GetByIDFunc func(ctx context.Context, id int64) (*domain.Showtime, error)
	GetAllFunc  func(ctx context.Context) ([]*domain.Showtime, error)
}

func (m *MockShowtimeRepo) Create(ctx context.Context, showtime *domain.Showtime) error {
	return m.CreateFunc(ctx, showtime)
}

func (m *MockShowtimeRepo) Update(ctx context.Context, showtime *domain.Showtime) error {
	return m.UpdateFunc(ctx, showtime)
}

func (m *MockShowtimeRepo) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

func (m *MockShowtimeRepo) GetByID(ctx context.Context, id int64) (*domain.Showtime, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *MockShowtimeRepo) GetAll(ctx context.Context) ([]*domain.Showtime, error) {
	return m.GetAllFunc(ctx)
}

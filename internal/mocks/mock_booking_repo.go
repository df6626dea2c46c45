package mocks

import (
	"context"

	"github.com/cinetix/ticketing/internal/domain"
)

type MockBookingRepo struct {
	domain.BookingRepository
	CreateFunc  func(ctx context.Context, booking *domain.Booking) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Booking, error)
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	return m.CreateFunc(ctx, booking)
}

func (m *MockBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return m.GetByIDFunc(ctx, id)
}

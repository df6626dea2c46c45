package domain

import "context"

type Theater struct {
	ID          int64
	Name        string
	Address     string
	MaxCapacity int
}

// TheaterLookup reads theaters from the theater service. Showtime creation
// resolves theaters by name, updates by id.
type TheaterLookup interface {
	GetByID(ctx context.Context, id int64) (*Theater, error)
	GetByName(ctx context.Context, name string) (*Theater, error)
}

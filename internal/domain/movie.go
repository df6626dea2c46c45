package domain

import "context"

type Movie struct {
	ID          int64
	Title       string
	Genre       string
	Duration    int
	Rating      float64
	ReleaseYear int
}

// MovieLookup reads movies from the movie service. Implementations return
// ErrRecordNotFound when the movie does not exist and ErrUpstreamUnavailable
// when the service cannot be reached.
type MovieLookup interface {
	GetByID(ctx context.Context, id int64) (*Movie, error)
}

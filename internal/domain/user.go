package domain

import "context"

// UserLookup resolves a user id from the user service. The user service only
// exposes a name-based read, so ids obtained elsewhere are treated as opaque.
type UserLookup interface {
	GetIDByName(ctx context.Context, firstName, lastName string) (string, error)
}

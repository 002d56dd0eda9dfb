package cart

import "context"

// MutateFunc changes a cart in place. Returning an error aborts the write.
type MutateFunc func(c *Cart) error

// Repository persists carts, one per owner key.
//
// Get creates an empty cart when the owner has none. Mutate applies fn
// atomically with respect to other Mutate calls for the same owner,
// creating the cart first when needed, and returns the stored result.
type Repository interface {
	Get(ctx context.Context, owner string) (*Cart, error)
	Mutate(ctx context.Context, owner string, fn MutateFunc) (*Cart, error)
}

// Package memory holds process-local repositories for development and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/user"
)

// UserRepository keeps users in maps keyed by id and email
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*user.User
	byEmail map[string]string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]*user.User),
		byEmail: make(map[string]string),
	}
}

func (r *UserRepository) Create(_ context.Context, u *user.User) error {
	u.Prepare()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[u.Email]; ok {
		return user.ErrEmailTaken
	}
	c := *u
	r.byID[u.ID] = &c
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[user.NormalizeEmail(email)]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	c := *r.byID[id]
	return &c, nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (r *UserRepository) Update(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[u.ID]
	if !ok {
		return user.ErrUserNotFound
	}
	c := *u
	c.Email = existing.Email
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	r.byID[u.ID] = &c
	return nil
}

// CartRepository serialises every mutation behind one mutex
type CartRepository struct {
	mu    sync.Mutex
	carts map[string]*cart.Cart
}

func NewCartRepository() *CartRepository {
	return &CartRepository{carts: make(map[string]*cart.Cart)}
}

func (r *CartRepository) Get(_ context.Context, owner string) (*cart.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return copyCart(r.getOrCreate(owner)), nil
}

func (r *CartRepository) Mutate(_ context.Context, owner string, fn cart.MutateFunc) (*cart.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	working := copyCart(r.getOrCreate(owner))
	if err := fn(working); err != nil {
		return nil, err
	}
	working.Version++
	working.UpdatedAt = time.Now().UTC()
	r.carts[owner] = working
	return copyCart(working), nil
}

func (r *CartRepository) getOrCreate(owner string) *cart.Cart {
	c, ok := r.carts[owner]
	if !ok {
		c = cart.NewCart(owner)
		r.carts[owner] = c
	}
	return c
}

func copyCart(c *cart.Cart) *cart.Cart {
	out := *c
	out.Items = append(cart.LineItems{}, c.Items...)
	return &out
}

// OrderRepository keeps orders in insertion order
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*order.Order
	ids    []string
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[string]*order.Order)}
}

func (r *OrderRepository) Create(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[o.ID]; !ok {
		r.ids = append(r.ids, o.ID)
	}
	r.orders[o.ID] = copyOrder(o)
	return nil
}

func (r *OrderRepository) FindByID(_ context.Context, id string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return copyOrder(o), nil
}

func (r *OrderRepository) List(_ context.Context, filter order.ListFilter) ([]order.Order, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []order.Order
	for i := len(r.ids) - 1; i >= 0; i-- {
		o := r.orders[r.ids[i]]
		if filter.UserID != "" && o.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		matched = append(matched, *copyOrder(o))
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := filter.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if filter.Limit > 0 && start+filter.Limit < end {
		end = start + filter.Limit
	}
	return matched[start:end], total, nil
}

func (r *OrderRepository) UpdateStatus(_ context.Context, o *order.Order, from order.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[o.ID]
	if !ok {
		return order.ErrOrderNotFound
	}
	if stored.Status != from {
		return order.ErrStaleStatus
	}
	r.orders[o.ID] = copyOrder(o)
	return nil
}

func copyOrder(o *order.Order) *order.Order {
	out := *o
	out.Items = append(order.Items{}, o.Items...)
	out.StatusHistory = append(order.StatusHistory{}, o.StatusHistory...)
	return &out
}

var (
	_ user.Repository  = (*UserRepository)(nil)
	_ cart.Repository  = (*CartRepository)(nil)
	_ order.Repository = (*OrderRepository)(nil)
)

// Package session keeps each shopper's cart and favorites between requests.
package session

import (
	"context"
	"time"

	"storefront-service/cart"
	"storefront-service/favorites"

	"github.com/google/uuid"
)

// Session is the per-shopper state. The zero-value collections are usable,
// New fills them in.
type Session struct {
	ID        string         `json:"id"`
	Cart      *cart.Cart     `json:"cart"`
	Favorites *favorites.Set `json:"favorites"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// New starts an empty session. An empty id is replaced by a random uuid.
func New(id string, now time.Time) *Session {
	if id == "" {
		id = uuid.NewString()
	}
	return &Session{
		ID:        id,
		Cart:      cart.New(),
		Favorites: favorites.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy.
func (s *Session) Clone() *Session {
	out := *s
	out.Cart = s.cart().Clone()
	out.Favorites = s.favorites().Clone()
	return &out
}

// ensure fills in collections lost by a decode of an older payload.
func (s *Session) ensure() {
	s.Cart = s.cart()
	s.Favorites = s.favorites()
}

func (s *Session) cart() *cart.Cart {
	if s.Cart == nil {
		return cart.New()
	}
	return s.Cart
}

func (s *Session) favorites() *favorites.Set {
	if s.Favorites == nil {
		return favorites.New()
	}
	return s.Favorites
}

// Store persists sessions. Get returns (nil, nil) for an unknown or expired
// id. Remember/Recall hold short string values such as checkout idempotency
// keys; Reserve sets one only when it is absent, atomically, and Forget
// drops it.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	Remember(ctx context.Context, key, value string, ttl time.Duration) error
	Recall(ctx context.Context, key string) (string, error)
	Reserve(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Forget(ctx context.Context, key string) error
}

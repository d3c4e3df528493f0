package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Store keeps live sessions in memory with a TTL. Expired sessions are
// purged automatically, which doubles as the "destroyed on session end"
// lifecycle for clients that never call delete.
type Store struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewStore(ttl time.Duration) *Store {
	c := cache.New(ttl, 10*time.Minute)
	return &Store{cache: c, ttl: ttl}
}

// Create allocates a fresh idle session.
func (st *Store) Create() *Session {
	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(st.ttl),
		status:    StatusIdle,
	}
	st.cache.Set(s.ID, s, cache.DefaultExpiration)
	return s
}

func (st *Store) Get(id string) (*Session, bool) {
	if x, found := st.cache.Get(id); found {
		return x.(*Session), true
	}
	return nil, false
}

func (st *Store) Delete(id string) {
	st.cache.Delete(id)
}

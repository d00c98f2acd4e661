package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"ai-datacharts-be/pkg/store"
)

// SessionRepository keeps sessions in process memory. Entries expire after
// the configured TTL so abandoned uploads do not grow the heap without
// bound; every Save refreshes the expiry.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(ttl, purgeInterval time.Duration) *SessionRepository {
	return &SessionRepository{
		cache: cache.New(ttl, purgeInterval),
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.Id, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

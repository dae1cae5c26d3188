package cache

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/PavaniTiago/cck-survey-api/internal/domain/entities"
)

// entry serializa as ações de um mesmo respondente
type entry struct {
	mu      sync.Mutex
	session *entities.Session
}

// SessionStore guarda as sessões da pesquisa em memória com expiração deslizante
type SessionStore struct {
	items *gocache.Cache
	ttl   time.Duration
	mu    sync.Mutex
}

// NewSessionStore cria o armazenamento; itens expirados são limpos a cada ttl/2
func NewSessionStore(ttl time.Duration) *SessionStore {
	cleanup := ttl / 2
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	return &SessionStore{
		items: gocache.New(ttl, cleanup),
		ttl:   ttl,
	}
}

// Put adiciona ou substitui uma sessão
func (s *SessionStore) Put(session *entities.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items.Set(session.ID, &entry{session: session}, s.ttl)
}

// Acquire retorna a sessão bloqueada para uso exclusivo e renova a expiração.
// O chamador deve executar release ao terminar.
func (s *SessionStore) Acquire(id string) (session *entities.Session, release func(), found bool) {
	s.mu.Lock()
	item, ok := s.items.Get(id)
	if ok {
		s.items.Set(id, item, s.ttl)
	}
	s.mu.Unlock()
	if !ok {
		return nil, func() {}, false
	}

	e := item.(*entry)
	e.mu.Lock()
	return e.session, e.mu.Unlock, true
}

// Delete remove uma sessão
func (s *SessionStore) Delete(id string) {
	s.items.Delete(id)
}

// Count retorna o número de sessões ativas
func (s *SessionStore) Count() int {
	return s.items.ItemCount()
}

// Clear remove todas as sessões
func (s *SessionStore) Clear() {
	s.items.Flush()
}

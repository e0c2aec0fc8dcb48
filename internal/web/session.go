package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/arkas/internal/budget"
	"github.com/Veraticus/arkas/internal/model"
)

const (
	sessionCookie = "arkas_session"
	adminCookie   = "arkas_admin"

	sessionIdleTTL = 2 * time.Hour
	maxSessions    = 10000
)

type sessionEntry struct {
	session  *budget.Session
	lastSeen time.Time
}

// sessionStore maps browser cookies to budget sessions. Sessions idle longer
// than ttl are dropped, and at most limit are kept; the least recently used
// one is evicted first. The lock guards the map only; a session is used by
// one request at a time.
type sessionStore struct {
	now      func() time.Time
	sessions map[string]*sessionEntry
	ttl      time.Duration
	limit    int
	mu       sync.Mutex
}

func newSessionStore(now func() time.Time, ttl time.Duration, limit int) *sessionStore {
	return &sessionStore{
		now:      now,
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
		limit:    limit,
	}
}

// len reports the number of live sessions.
func (st *sessionStore) len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// sweep drops idle sessions, then the oldest ones until there is room for
// one more. Callers hold st.mu.
func (st *sessionStore) sweep(now time.Time) {
	for id, e := range st.sessions {
		if now.Sub(e.lastSeen) > st.ttl {
			delete(st.sessions, id)
		}
	}
	for len(st.sessions) >= st.limit {
		var (
			oldestID string
			oldest   time.Time
		)
		for id, e := range st.sessions {
			if oldestID == "" || e.lastSeen.Before(oldest) {
				oldestID, oldest = id, e.lastSeen
			}
		}
		delete(st.sessions, oldestID)
	}
}

// session returns the caller's session, starting one and setting the cookie
// when the request carries none or an unknown one.
func (st *sessionStore) session(w http.ResponseWriter, r *http.Request, categories []model.Category) *budget.Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	if c, err := r.Cookie(sessionCookie); err == nil {
		if e, ok := st.sessions[c.Value]; ok && now.Sub(e.lastSeen) <= st.ttl {
			e.lastSeen = now
			return e.session
		}
	}

	st.sweep(now)
	s := budget.NewSession(categories)
	st.sessions[s.ID] = &sessionEntry{session: s, lastSeen: now}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}

// tokenStore holds the tokens of signed-in admins.
type tokenStore struct {
	tokens map[string]struct{}
	mu     sync.Mutex
}

func newTokenStore() *tokenStore {
	return &tokenStore{tokens: make(map[string]struct{})}
}

func (ts *tokenStore) issue() string {
	token := uuid.NewString()
	ts.mu.Lock()
	ts.tokens[token] = struct{}{}
	ts.mu.Unlock()
	return token
}

func (ts *tokenStore) valid(token string) bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	_, ok := ts.tokens[token]
	return ok
}

func (ts *tokenStore) revoke(token string) {
	ts.mu.Lock()
	delete(ts.tokens, token)
	ts.mu.Unlock()
}

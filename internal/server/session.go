package server

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/joseph-ayodele/docfacts/internal/cache"
	"github.com/joseph-ayodele/docfacts/internal/common"
	"github.com/joseph-ayodele/docfacts/internal/pipeline"
)

const (
	sessionCookie = "docfacts_session"
	sessionKey    = "session"
)

// Flash levels, rendered as banner styles.
const (
	levelSuccess = "success"
	levelInfo    = "info"
	levelWarning = "warning"
	levelError   = "error"
)

// Flash is a one-shot message shown on the next page render.
type Flash struct {
	Level string
	Text  string
}

// Session is one browser's state: the last result, its memo, and pending
// messages. A new run overwrites the result.
type Session struct {
	ID string

	mu      sync.Mutex
	useAI   bool
	result  *pipeline.Result
	memo    *cache.Memo
	flashes []Flash
}

func newSession() *Session {
	return &Session{ID: uuid.New().String(), useAI: true, memo: cache.NewMemo()}
}

func (s *Session) UseAI() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.useAI
}

func (s *Session) SetUseAI(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.useAI = v
}

// Memo returns the session's model-result memo.
func (s *Session) Memo() *cache.Memo {
	return s.memo
}

func (s *Session) Result() *pipeline.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

func (s *Session) SetResult(r pipeline.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = &r
}

func (s *Session) AddFlash(level, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flashes = append(s.flashes, Flash{Level: level, Text: text})
}

// TakeFlashes returns and forgets the pending messages.
func (s *Session) TakeFlashes() []Flash {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.flashes
	s.flashes = nil
	return out
}

// Clear discards the result, the memo and pending messages.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = nil
	s.flashes = nil
	s.useAI = true
	s.memo.Clear()
}

// SessionStore keeps sessions in memory, keyed by cookie value.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Get returns the session for id, if any.
func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Create registers a fresh session.
func (st *SessionStore) Create() *Session {
	s := newSession()
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
	return s
}

// Len reports the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// withSession attaches the caller's session, creating one (and its cookie)
// when the cookie is missing, malformed or unknown.
func (s *Server) withSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var sess *Session
		if ck, err := c.Cookie(sessionCookie); err == nil {
			v := common.NewValidator().Field(sessionCookie, ck.Value, common.UUID)
			if !v.HasErrors() {
				sess, _ = s.sessions.Get(ck.Value)
			}
		}
		if sess == nil {
			sess = s.sessions.Create()
			c.SetCookie(&http.Cookie{
				Name:     sessionCookie,
				Value:    sess.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			s.logger.Debug("server.session.new", "session_id", sess.ID)
		}

		c.Set(sessionKey, sess)
		req := c.Request()
		c.SetRequest(req.WithContext(common.WithSessionID(req.Context(), sess.ID)))
		return next(c)
	}
}

func sessionFrom(c echo.Context) *Session {
	sess, _ := c.Get(sessionKey).(*Session)
	return sess
}

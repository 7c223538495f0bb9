package api

import (
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"vesta/api/handlers"
)

const sessionActivityInterval = 30 * time.Second

// sessionActivity throttles last-seen writes so polling the view does not
// hammer the sessions table.
type sessionActivity struct {
	mu   sync.Mutex
	last map[string]time.Time
}

func newSessionActivity() *sessionActivity {
	return &sessionActivity{last: map[string]time.Time{}}
}

func (sa *sessionActivity) shouldUpdate(id string, now time.Time, interval time.Duration) bool {
	sa.mu.Lock()
	defer sa.mu.Unlock()
	last, ok := sa.last[id]
	if !ok || now.Sub(last) >= interval {
		sa.last[id] = now
		return true
	}
	return false
}

// withSession resolves the session cookie, loads the user, attaches the
// session's workspace to the request context, and rejects everything else
// with 401.
func (s *Server) withSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(handlers.SessionCookieName)
		if err != nil || cookie.Value == "" {
			if s.logger != nil {
				s.logger.Printf("AUTH fail (missing cookie) %s %s", r.Method, r.URL.Path)
			}
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		sess, err := s.sessionManager.Resolve(r.Context(), cookie.Value)
		if err != nil || sess == nil {
			if s.logger != nil {
				s.logger.Printf("AUTH fail (session not found) %s %s: %v", r.Method, r.URL.Path, err)
			}
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		user, err := s.users.Get(r.Context(), sess.UserID)
		if err != nil || user == nil {
			if s.logger != nil {
				s.logger.Printf("AUTH fail (user missing) %s %s: %v", r.Method, r.URL.Path, err)
			}
			_ = s.sessionManager.Revoke(r.Context(), sess.ID)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if s.activityTracker.shouldUpdate(sess.ID, time.Now(), sessionActivityInterval) {
			s.sessionManager.Touch(r.Context(), sess.ID)
		}
		ws := s.workspaceRegistry.Acquire(r.Context(), sess, user)
		next(w, r.WithContext(handlers.WithWorkspace(r.Context(), ws)))
	}
}

func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if s.logger != nil {
					s.logger.Errorf("panic %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				}
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		if s.logger != nil {
			s.logger.Debugf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
		}
	})
}

func (s *Server) securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

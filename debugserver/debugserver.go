// Package debugserver implements `langc debug-serve`, the read-only HTTP
// introspection server from §4.8: GET /grammar, /grammar/{state},
// /conflicts, and /cache, each served from the already-built
// *compiler.Compiler with no mutation and no concurrency hazard, per
// §4.8's "read-only and diagnostic-only" guarantee.
//
// Grounded directly on the reference server package's own
// router/middleware/auth conventions: chi routing and chi.URLParam (per
// server/endpoints.go's requireIDParam), a uuid request ID attached to
// every request's context (server/endpoints.go again), a DontPanic-style
// recovery middleware (server/middle/middle.go), and a bcrypt-hashed
// secret gating JWT-signed bearer auth (server/server.go's
// bcrypt.GenerateFromPassword / generateJWTForUser / verifyJWT), adapted
// from "log a user in against a user store" to "check a single
// operator-supplied debug token" since this server has no users, no
// sessions, and nothing to persist.
package debugserver

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dekarrin/langc/compiler"
	"github.com/dekarrin/langc/internal/clog"
)

type ctxKey int

const ctxKeyRequestID ctxKey = iota

// Server serves the debug endpoints for one already-constructed Compiler.
// It never calls Compile and never mutates the Compiler, so it carries no
// concurrency hazard beyond what net/http already gives every handler.
type Server struct {
	compiler *compiler.Compiler

	tokenHash []byte // bcrypt hash of the configured --debug-token, nil if auth is disabled
	jwtSecret []byte
}

// NewServer builds a Server over c. If debugToken is empty, every request
// is served unauthenticated, per §4.8 ("if --debug-token is set").
func NewServer(c *compiler.Compiler, debugToken string) (*Server, error) {
	s := &Server{compiler: c}
	if debugToken == "" {
		return s, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(debugToken), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("debugserver: could not hash debug token: %w", err)
	}
	s.tokenHash = hash

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("debugserver: could not generate session secret: %w", err)
	}
	s.jwtSecret = secret
	return s, nil
}

// Router builds the chi mux: requestID and panic-recovery middleware wrap
// every route, auth middleware wraps only the introspection routes (not
// /auth itself), per §4.8.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID, s.dontPanic, s.accessLog)

	if s.tokenHash != nil {
		r.Post("/auth", s.handleAuth)
	}

	r.Group(func(r chi.Router) {
		if s.tokenHash != nil {
			r.Use(s.requireAuth)
		}
		r.Get("/grammar", s.handleGrammar)
		r.Get("/grammar/{state}", s.handleGrammarState)
		r.Get("/conflicts", s.handleConflicts)
		r.Get("/cache", s.handleCache)
	})

	return r
}

// requestID tags the request context with a uuid, mirroring
// server/endpoints.go's requireIDParam use of uuid.Parse elsewhere in the
// reference server, so concurrent debug sessions' log lines can be
// correlated.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := uuid.New()
		w.Header().Set("X-Request-Id", id.String())
		ctx := context.WithValue(req.Context(), ctxKeyRequestID, id)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id, _ := req.Context().Value(ctxKeyRequestID).(uuid.UUID)
		clog.Infof("debug-serve %s %s %s", id, req.Method, req.URL.Path)
		next.ServeHTTP(w, req)
	})
}

// dontPanic recovers a handler panic and writes a generic 500 rather than
// crashing the process, per the reference middle.DontPanic.
func (s *Server) dontPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				clog.Errorf("panic: %v\n%s", p, debug.Stack())
				writeJSONError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, req)
	})
}

// requireAuth verifies an Authorization: Bearer <jwt> header, signed with
// s.jwtSecret, minted by handleAuth.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		tok := bearerToken(req)
		if tok == "" {
			writeJSONError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		_, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
			return s.jwtSecret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer("langc-debug-serve"))
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, "invalid or expired session token")
			return
		}

		next.ServeHTTP(w, req)
	})
}

type authRequest struct {
	Token string `json:"token"`
}

type authResponse struct {
	SessionToken string `json:"session_token"`
}

// handleAuth checks a plaintext candidate token against the bcrypt hash
// of --debug-token, per §4.8 ("verifies an incoming plaintext candidate
// against that hash before minting... JWTs"), and mints a short-lived
// HS256 session JWT on success.
func (s *Server) handleAuth(w http.ResponseWriter, req *http.Request) {
	var body authRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if bcrypt.CompareHashAndPassword(s.tokenHash, []byte(body.Token)) != nil {
		writeJSONError(w, http.StatusUnauthorized, "invalid debug token")
		return
	}

	claims := jwt.MapClaims{
		"iss": "langc-debug-serve",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.jwtSecret)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "could not mint session token")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{SessionToken: signed})
}

// handleGrammar serves the full state-by-state DFA dump as JSON, per
// §4.8.
func (s *Server) handleGrammar(w http.ResponseWriter, req *http.Request) {
	t := s.compiler.Table()
	writeJSON(w, http.StatusOK, map[string]any{
		"num_states": t.NumStates(),
		"dump":       t.Dump(),
	})
}

// handleGrammarState serves a single DFA state's item set, using
// chi.URLParam exactly as server/endpoints.go's requireIDParam does.
func (s *Server) handleGrammarState(w http.ResponseWriter, req *http.Request) {
	raw := chi.URLParam(req, "state")
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "state must be an integer")
		return
	}

	t := s.compiler.Table()
	if n < 0 || n >= t.NumStates() {
		writeJSONError(w, http.StatusNotFound, "no such state")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"state": n,
		"items": t.ItemSetString(n),
	})
}

// handleConflicts serves the grammar's recorded, non-fatal conflicts.
func (s *Server) handleConflicts(w http.ResponseWriter, req *http.Request) {
	t := s.compiler.Table()
	out := make([]string, 0, len(t.Conflicts))
	for _, c := range t.Conflicts {
		out = append(out, c.Error())
	}
	writeJSON(w, http.StatusOK, map[string]any{"conflicts": out})
}

// handleCache reports whether this Compiler's table construction hit the
// grammar cache, as a single cache_hit flag; it reports neither the
// fingerprint nor hit/miss counters.
func (s *Server) handleCache(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"cache_hit": s.compiler.CacheHit})
}

func bearerToken(req *http.Request) string {
	const prefix = "Bearer "
	h := req.Header.Get("Authorization")
	if len(h) <= len(prefix) || h[:len(prefix)] != prefix {
		return ""
	}
	return h[len(prefix):]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg, "status": status})
}

// internal/httpserver/auth.go
//
// Accounts for the leaderboard.
//   - POST /auth/signup → create user (bcrypt hash), return a JWT.
//   - POST /auth/login  → verify password, return a JWT.
//   - requireAuth       → middleware that accepts "Authorization: Bearer <jwt>"
//                         and puts the user into the request context.
//
// Tokens are HS256 with claims {sub, username, iat, exp}. Clients are
// terminals, so tokens travel in the Authorization header, never cookies.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// credentials is the signup/login payload.
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// sessionRes is returned by signup and login.
type sessionRes struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// authUser is placed into request context by requireAuth.
type authUser struct {
	ID       string
	Username string
}

// ctxUserKey is the context key type for storing authUser.
type ctxUserKey struct{}

func currentUser(ctx context.Context) *authUser {
	u, _ := ctx.Value(ctxUserKey{}).(*authUser)
	return u
}

var (
	errUsernameTaken = errors.New("username taken")
	errInvalidSignup = errors.New("invalid signup")
)

func (s *Server) mountAuthRoutes() {
	s.r.Post("/auth/signup", s.handleSignup)
	s.r.Post("/auth/login", s.handleLogin)
}

// handleSignup creates a new user and returns a session.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	u, err := s.createUser(r.Context(), body.Username, body.Password)
	switch {
	case errors.Is(err, errUsernameTaken):
		jsonError(w, http.StatusConflict, "username_taken")
		return
	case errors.Is(err, errInvalidSignup):
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		log.Error().Err(err).Msg("create user")
		jsonError(w, http.StatusInternalServerError, "db_error")
		return
	}
	s.writeSession(w, u, http.StatusCreated)
}

// handleLogin authenticates a user and returns a session.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	u, hash, err := s.findUserByUsername(r.Context(), strings.TrimSpace(body.Username))
	if err != nil || !checkPassword(hash, body.Password) {
		jsonError(w, http.StatusUnauthorized, "invalid_credentials")
		return
	}
	s.writeSession(w, u, http.StatusOK)
}

func (s *Server) writeSession(w http.ResponseWriter, u *authUser, status int) {
	tok, err := s.signJWT(u)
	if err != nil {
		log.Error().Err(err).Msg("sign token")
		jsonError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(sessionRes{Token: tok, Username: u.Username})
}

// ------------------------ users ---------------------------------------------

// createUser validates input, hashes the password and inserts a new user.
func (s *Server) createUser(ctx context.Context, username, pw string) (*authUser, error) {
	username = strings.TrimSpace(username)
	if err := validateSignup(username, pw); err != nil {
		return nil, err
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &authUser{ID: ulid.Make().String(), Username: username}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		u.ID, u.Username, string(h), s.now().UTC().Format(time.RFC3339))
	var sqlErr sqlite3.Error
	if errors.As(err, &sqlErr) && sqlErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return nil, errUsernameTaken
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// findUserByUsername loads a user and its password hash (case-insensitive).
func (s *Server) findUserByUsername(ctx context.Context, username string) (*authUser, string, error) {
	var u authUser
	var hash string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash FROM users WHERE username=?`, username,
	).Scan(&u.ID, &u.Username, &hash)
	if err != nil {
		return nil, "", err
	}
	return &u, hash, nil
}

// userExists reports whether id is still a user.
func (s *Server) userExists(ctx context.Context, id string) bool {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id=?`, id).Scan(&one)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Warn().Err(err).Msg("lookup user")
	}
	return err == nil
}

// checkPassword is a bcrypt verifier.
func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// validateSignup enforces basic username/password rules.
func validateSignup(u, p string) error {
	if len(u) < 3 || len(u) > 24 {
		return fmt.Errorf("%w: username must be 3-24 chars", errInvalidSignup)
	}
	for _, r := range u {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return fmt.Errorf("%w: username takes letters, numbers, underscore only", errInvalidSignup)
		}
	}
	if len(p) < 8 || len(p) > 72 {
		return fmt.Errorf("%w: password must be 8-72 chars", errInvalidSignup)
	}
	return nil
}

// ------------------------------ JWT ------------------------------------------

// signJWT creates an HS256 token for u that expires after cfg.JWTExpiry.
func (s *Server) signJWT(u *authUser) (string, error) {
	now := s.now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      u.ID,
		"username": u.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(s.cfg.JWTExpiry).Unix(),
	})
	return t.SignedString([]byte(s.cfg.JWTSecret))
}

// bearer extracts the token from "Authorization: Bearer <token>".
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// requireAuth enforces a valid JWT and injects authUser into request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearer(r)
		if tokenStr == "" {
			jsonError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(s.cfg.JWTSecret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
		if err != nil || !token.Valid {
			jsonError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		id, _ := claims["sub"].(string)
		username, _ := claims["username"].(string)
		if id == "" || username == "" || !s.userExists(r.Context(), id) {
			jsonError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		ctx := context.WithValue(r.Context(), ctxUserKey{}, &authUser{ID: id, Username: username})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

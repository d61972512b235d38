// Package auth implements the admin gate guarding catalog edits.
//
// The gate is a convenience lock for a single-user tool, not an access-control
// system. The expected password is a bcrypt hash kept in local state, falling
// back to DefaultPassword. A successful login issues an HS256 JWT whose jti can
// be revoked before it expires.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/crypto/bcrypt"

	"mediashelf/internal/config"
	"mediashelf/internal/logging"
	"mediashelf/internal/store"
)

// DefaultPassword is accepted until a custom password is set.
const DefaultPassword = "admin123"

const (
	subject      = "admin"
	issuer       = "mediashelf"
	secretBytes  = 32
	revokedSweep = 10 * time.Minute
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrSessionExpired  = errors.New("session expired")
	ErrSessionRevoked  = errors.New("session revoked")
	ErrInvalidSession  = errors.New("invalid session")
)

// Claims are the JWT claims carried by a session token.
type Claims struct {
	jwt.RegisteredClaims
}

// Session is an issued login.
type Session struct {
	Token     string    `json:"token"`
	ID        string    `json:"id"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Gate checks passwords and issues, verifies, and revokes sessions.
type Gate struct {
	state   store.Backend
	secret  []byte
	ttl     time.Duration
	revoked *cache.Cache
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures a Gate.
type Option func(*Gate)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) {
		if now != nil {
			g.now = now
		}
	}
}

// New constructs a Gate. The signing secret comes from auth.secret in the
// configuration, else from local state; when neither has one a random secret
// is generated and saved.
func New(ctx context.Context, cfg *config.Config, state store.Backend, logger *slog.Logger, opts ...Option) (*Gate, error) {
	secret, err := resolveSecret(ctx, cfg.Auth.Secret, state)
	if err != nil {
		return nil, err
	}
	g := &Gate{
		state:   state,
		secret:  []byte(secret),
		ttl:     time.Duration(cfg.Auth.SessionTTLMinutes) * time.Minute,
		revoked: cache.New(cache.NoExpiration, revokedSweep),
		now:     time.Now,
		logger:  logging.NewComponentLogger(logger, "auth"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func resolveSecret(ctx context.Context, configured string, state store.Backend) (string, error) {
	if configured != "" {
		return configured, nil
	}
	saved, ok, err := store.Lookup(ctx, state, store.KeyAuthSecret)
	if err != nil {
		return "", fmt.Errorf("load auth secret: %w", err)
	}
	if ok && saved != "" {
		return saved, nil
	}
	buf := make([]byte, secretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate auth secret: %w", err)
	}
	generated := hex.EncodeToString(buf)
	if err := state.Set(ctx, store.KeyAuthSecret, generated); err != nil {
		return "", fmt.Errorf("save auth secret: %w", err)
	}
	return generated, nil
}

// CheckPassword reports whether password matches the expected password.
func (g *Gate) CheckPassword(ctx context.Context, password string) (bool, error) {
	hash, ok, err := store.Lookup(ctx, g.state, store.KeyAuthPasswordHash)
	if err != nil {
		return false, fmt.Errorf("load password: %w", err)
	}
	if !ok || hash == "" {
		return subtle.ConstantTimeCompare([]byte(password), []byte(DefaultPassword)) == 1, nil
	}
	err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("compare password: %w", err)
	}
	return true, nil
}

// UsingDefaultPassword reports whether no custom password has been set.
func (g *Gate) UsingDefaultPassword(ctx context.Context) (bool, error) {
	hash, ok, err := store.Lookup(ctx, g.state, store.KeyAuthPasswordHash)
	if err != nil {
		return false, err
	}
	return !ok || hash == "", nil
}

// SetPassword replaces the expected password.
func (g *Gate) SetPassword(ctx context.Context, password string) error {
	if strings.TrimSpace(password) == "" {
		return errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := g.state.Set(ctx, store.KeyAuthPasswordHash, string(hash)); err != nil {
		return fmt.Errorf("save password: %w", err)
	}
	g.logger.Info("admin password changed")
	return nil
}

// Login checks password and issues a session.
func (g *Gate) Login(ctx context.Context, password string) (Session, error) {
	ok, err := g.CheckPassword(ctx, password)
	if err != nil {
		return Session{}, err
	}
	if !ok {
		g.logger.Warn("login rejected", logging.String("reason", "password mismatch"))
		return Session{}, ErrInvalidPassword
	}
	return g.issue()
}

func (g *Gate) issue() (Session, error) {
	now := g.now()
	id := uuid.NewString()
	expires := now.Add(g.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Subject:   subject,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return Session{}, fmt.Errorf("sign session: %w", err)
	}
	return Session{Token: token, ID: id, ExpiresAt: expires.Truncate(time.Second)}, nil
}

func (g *Gate) parse(token string, opts ...jwt.ParserOption) (*Claims, error) {
	opts = append(opts,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(g.now),
		jwt.WithIssuer(issuer),
		jwt.WithSubject(subject),
	)
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(strings.TrimSpace(token), claims, func(*jwt.Token) (any, error) {
		return g.secret, nil
	}, opts...)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, ErrSessionExpired
	}
	if err != nil || !parsed.Valid || claims.ID == "" {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

// Verify validates token and returns its claims.
func (g *Gate) Verify(token string) (*Claims, error) {
	claims, err := g.parse(token)
	if err != nil {
		return nil, err
	}
	if _, revoked := g.revoked.Get(claims.ID); revoked {
		return nil, ErrSessionRevoked
	}
	return claims, nil
}

// Logout revokes token until it would have expired. Expired tokens are
// accepted and ignored.
func (g *Gate) Logout(token string) error {
	claims, err := g.parse(token, jwt.WithoutClaimsValidation())
	if err != nil {
		return err
	}
	if claims.ExpiresAt == nil {
		return ErrInvalidSession
	}
	remaining := claims.ExpiresAt.Time.Sub(g.now())
	if remaining <= 0 {
		return nil
	}
	g.revoked.Set(claims.ID, struct{}{}, remaining)
	return nil
}

// Refresh issues a replacement session once more than half of the current
// session's lifetime has elapsed. It returns ok=false when no refresh is due.
// The old token stays valid until its own expiry so in-flight requests that
// still carry it are not rejected; Logout revokes it explicitly.
func (g *Gate) Refresh(token string) (Session, bool, error) {
	claims, err := g.Verify(token)
	if err != nil {
		return Session{}, false, err
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return Session{}, false, nil
	}
	total := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if g.now().Sub(claims.IssuedAt.Time) <= total/2 {
		return Session{}, false, nil
	}
	session, err := g.issue()
	if err != nil {
		return Session{}, false, err
	}
	return session, true, nil
}

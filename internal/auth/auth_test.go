package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"mediashelf/internal/auth"
	"mediashelf/internal/logging"
	"mediashelf/internal/store"
	"mediashelf/internal/testsupport"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newGate(t *testing.T, state store.Backend, c *clock) *auth.Gate {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	cfg.Auth.SessionTTLMinutes = 60
	gate, err := auth.New(context.Background(), cfg, state, logging.NewNop(), auth.WithClock(c.Now))
	if err != nil {
		t.Fatalf("auth.New: %v", err)
	}
	return gate
}

func TestDefaultPasswordUntilChanged(t *testing.T) {
	ctx := context.Background()
	state := store.NewMemory()
	gate := newGate(t, state, &clock{now: time.Now()})

	if _, err := gate.Login(ctx, auth.DefaultPassword); err != nil {
		t.Fatalf("expected default password accepted: %v", err)
	}
	if _, err := gate.Login(ctx, "wrong"); !errors.Is(err, auth.ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}

	if err := gate.SetPassword(ctx, "s3cret"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	hash, _ := state.Get(ctx, store.KeyAuthPasswordHash)
	if hash == "" || hash == "s3cret" {
		t.Fatalf("expected bcrypt hash stored, got %q", hash)
	}
	if _, err := gate.Login(ctx, auth.DefaultPassword); !errors.Is(err, auth.ErrInvalidPassword) {
		t.Fatalf("expected default password rejected after change, got %v", err)
	}
	if _, err := gate.Login(ctx, "s3cret"); err != nil {
		t.Fatalf("expected new password accepted: %v", err)
	}
	if def, _ := gate.UsingDefaultPassword(ctx); def {
		t.Fatal("expected custom password in use")
	}
	if err := gate.SetPassword(ctx, "  "); err == nil {
		t.Fatal("expected blank password rejected")
	}
}

func TestVerifyExpiryAndRevocation(t *testing.T) {
	c := &clock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	gate := newGate(t, store.NewMemory(), c)

	session, err := gate.Login(context.Background(), auth.DefaultPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !session.ExpiresAt.Equal(c.now.Add(time.Hour)) {
		t.Fatalf("unexpected expiry %v", session.ExpiresAt)
	}
	claims, err := gate.Verify(session.Token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.ID != session.ID {
		t.Fatalf("expected jti %q, got %q", session.ID, claims.ID)
	}

	if err := gate.Logout(session.Token); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := gate.Verify(session.Token); !errors.Is(err, auth.ErrSessionRevoked) {
		t.Fatalf("expected ErrSessionRevoked, got %v", err)
	}

	other, _ := gate.Login(context.Background(), auth.DefaultPassword)
	c.now = c.now.Add(2 * time.Hour)
	if _, err := gate.Verify(other.Token); !errors.Is(err, auth.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if err := gate.Logout(other.Token); err != nil {
		t.Fatalf("logout of expired session should succeed: %v", err)
	}
}

func TestVerifyRejectsForeignTokens(t *testing.T) {
	c := &clock{now: time.Now()}
	first := newGate(t, store.NewMemory(), c)
	second := newGate(t, store.NewMemory(), c)

	session, _ := first.Login(context.Background(), auth.DefaultPassword)
	// testsupport configs share a fixed secret, so give the second gate its own.
	cfg := testsupport.NewConfig(t)
	cfg.Auth.Secret = "another-secret-0123456789"
	third, err := auth.New(context.Background(), cfg, store.NewMemory(), logging.NewNop())
	if err != nil {
		t.Fatalf("auth.New: %v", err)
	}
	if _, err := second.Verify(session.Token); err != nil {
		t.Fatalf("expected shared secret to verify: %v", err)
	}
	if _, err := third.Verify(session.Token); !errors.Is(err, auth.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
	if _, err := first.Verify("not-a-token"); !errors.Is(err, auth.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession for garbage, got %v", err)
	}
}

func TestSecretGeneratedAndPersisted(t *testing.T) {
	ctx := context.Background()
	cfg := testsupport.NewConfig(t)
	cfg.Auth.Secret = ""
	state := store.NewMemory()

	gate, err := auth.New(ctx, cfg, state, logging.NewNop())
	if err != nil {
		t.Fatalf("auth.New: %v", err)
	}
	secret, err := state.Get(ctx, store.KeyAuthSecret)
	if err != nil || len(secret) != 64 {
		t.Fatalf("expected generated hex secret, got %q (%v)", secret, err)
	}

	session, _ := gate.Login(ctx, auth.DefaultPassword)
	again, err := auth.New(ctx, cfg, state, logging.NewNop())
	if err != nil {
		t.Fatalf("auth.New: %v", err)
	}
	if _, err := again.Verify(session.Token); err != nil {
		t.Fatalf("expected persisted secret to verify session: %v", err)
	}
}

func TestRefreshAfterHalfLifetime(t *testing.T) {
	c := &clock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	gate := newGate(t, store.NewMemory(), c)
	session, _ := gate.Login(context.Background(), auth.DefaultPassword)

	c.now = c.now.Add(10 * time.Minute)
	if _, ok, err := gate.Refresh(session.Token); err != nil || ok {
		t.Fatalf("expected no refresh early, ok=%v err=%v", ok, err)
	}

	c.now = c.now.Add(25 * time.Minute)
	fresh, ok, err := gate.Refresh(session.Token)
	if err != nil || !ok {
		t.Fatalf("expected refresh, ok=%v err=%v", ok, err)
	}
	if _, err := gate.Verify(fresh.Token); err != nil {
		t.Fatalf("refreshed token invalid: %v", err)
	}
	if _, err := gate.Verify(session.Token); err != nil {
		t.Fatalf("expected old token to stay valid until expiry, got %v", err)
	}
	if _, _, err := gate.Refresh(session.Token); err != nil {
		t.Fatalf("concurrent refresh of old token failed: %v", err)
	}

	c.now = c.now.Add(30 * time.Minute)
	if _, err := gate.Verify(session.Token); !errors.Is(err, auth.ErrSessionExpired) {
		t.Fatalf("expected old token to expire, got %v", err)
	}
	if _, err := gate.Verify(fresh.Token); err != nil {
		t.Fatalf("refreshed token should outlive the old one: %v", err)
	}
}

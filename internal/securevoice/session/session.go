// Package session manages authenticated sessions for citizens, admins and
// the super-admin. The record lives server-side in an ephemeral store; the
// browser holds an HttpOnly cookie with a signed token naming the record.
//
// These sessions are unrelated to registration sessions, which are tracked
// by an opaque sessionId in request bodies.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/securevoice/securevoice/internal/securevoice/ephemeral"
	"github.com/securevoice/securevoice/pkg/cryptox"
	"github.com/securevoice/securevoice/pkg/httpx"
	"github.com/securevoice/securevoice/pkg/jwtx"
	"github.com/securevoice/securevoice/pkg/slogx"
)

const CookieName = "securevoice_session"

// DefaultTTL is used when Options.TTL is zero.
const DefaultTTL = 24 * time.Hour

type Kind string

const (
	KindUser       Kind = "user"
	KindAdmin      Kind = "admin"
	KindSuperAdmin Kind = "super_admin"
)

// ErrNoSession is returned by Load when the request carries no valid
// session.
var ErrNoSession = errors.New("session: no valid session")

// ErrRevoked is returned by a Validator when the principal behind a record
// may no longer act. Load then deletes the record.
var ErrRevoked = errors.New("session: revoked")

// Validator re-checks the principal behind every loaded record.
type Validator func(ctx context.Context, rec Record) error

// Principal is the identity a session is issued for.
type Principal struct {
	Kind      Kind
	SubjectID string
	Username  string
	Email     string
	District  string // admins only
}

// Record is the server-side session state.
type Record struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	SubjectID string    `json:"subjectId"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	District  string    `json:"district,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Options struct {
	TTL      time.Duration
	Secure   bool // set the cookie Secure flag
	Validate Validator
}

type Manager struct {
	records ephemeral.Store[Record]
	tokens  *jwtx.HS256
	ttl     time.Duration
	secure   bool
	validate Validator
	now      func() time.Time
}

func NewManager(records ephemeral.Store[Record], tokens *jwtx.HS256, opts Options) *Manager {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	return &Manager{
		records:  records,
		tokens:   tokens,
		ttl:      opts.TTL,
		secure:   opts.Secure,
		validate: opts.Validate,
		now:      time.Now,
	}
}

// Issue creates a session for p and sets the cookie on w.
func (m *Manager) Issue(ctx context.Context, w http.ResponseWriter, p Principal) (Record, error) {
	id, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return Record{}, fmt.Errorf("session: generate id: %w", err)
	}

	now := m.now().UTC()
	rec := Record{
		ID:        id,
		Kind:      p.Kind,
		SubjectID: p.SubjectID,
		Username:  p.Username,
		Email:     p.Email,
		District:  p.District,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.records.Put(ctx, id, rec, m.ttl); err != nil {
		return Record{}, fmt.Errorf("session: store record: %w", err)
	}

	token, err := m.tokens.Sign(jwtx.NewSessionClaims(p.SubjectID, id, string(p.Kind), m.tokens.Issuer(), m.ttl, now))
	if err != nil {
		_ = m.records.Delete(ctx, id)
		return Record{}, fmt.Errorf("session: sign token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  rec.ExpiresAt,
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return rec, nil
}

// Load resolves the session named by the request cookie.
func (m *Manager) Load(r *http.Request) (Record, error) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return Record{}, ErrNoSession
	}

	claims, err := m.tokens.Verify(c.Value)
	if err != nil {
		return Record{}, ErrNoSession
	}

	rec, err := m.records.Get(r.Context(), claims.SID)
	if errors.Is(err, ephemeral.ErrNotFound) {
		return Record{}, ErrNoSession
	}
	if err != nil {
		return Record{}, fmt.Errorf("session: load record: %w", err)
	}

	if !m.now().Before(rec.ExpiresAt) {
		_ = m.records.Delete(r.Context(), rec.ID)
		return Record{}, ErrNoSession
	}
	if string(rec.Kind) != claims.Kind {
		return Record{}, ErrNoSession
	}
	if m.validate != nil {
		if err := m.validate(r.Context(), rec); err != nil {
			if errors.Is(err, ErrRevoked) {
				_ = m.records.Delete(r.Context(), rec.ID)
				return Record{}, ErrNoSession
			}
			return Record{}, fmt.Errorf("session: validate: %w", err)
		}
	}
	return rec, nil
}

// Destroy deletes the session named by the request cookie, if any, and
// clears the cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var err error
	if c, cerr := r.Cookie(CookieName); cerr == nil {
		if claims, verr := m.tokens.Verify(c.Value); verr == nil {
			err = m.records.Delete(ctx, claims.SID)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return err
}

// Require only lets requests through that carry a session of one of kinds.
// The record is available to handlers through FromContext.
func (m *Manager) Require(kinds ...Kind) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec, err := m.Load(r)
			if err != nil && !errors.Is(err, ErrNoSession) {
				slogx.FromContext(r.Context()).Error("session lookup failed", "err", err)
				httpx.WriteError(w, http.StatusInternalServerError, "Server error")
				return
			}
			if err != nil || !slices.Contains(kinds, rec.Kind) {
				httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized. Please log in.")
				return
			}

			ctx := WithRecord(r.Context(), rec)
			ctx = httpx.WithSubject(ctx, rec.SubjectID)
			ctx = slogx.With(ctx, "session_kind", string(rec.Kind), "username", rec.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type ctxKey struct{}

// WithRecord stores rec in ctx.
func WithRecord(ctx context.Context, rec Record) context.Context {
	return context.WithValue(ctx, ctxKey{}, rec)
}

// FromContext returns the record stored by Require.
func FromContext(ctx context.Context) (Record, bool) {
	rec, ok := ctx.Value(ctxKey{}).(Record)
	return rec, ok
}

// Package service implements the registration and admin approval
// workflows on top of the durable store, the ephemeral stores and the email
// dispatcher. Services never touch HTTP; handlers establish cookie sessions
// from what the services return.
package service

import (
	"context"
	"time"

	"github.com/securevoice/securevoice/pkg/cryptox"
)

// Lifetimes of the time-boxed records.
const (
	RegistrationOTPTTL     = 5 * time.Minute
	RegistrationSessionTTL = 30 * time.Minute
	AdminOTPTTL            = 10 * time.Minute
	PasswordSetupTTL       = 24 * time.Hour
	EmailVerificationTTL   = 7 * 24 * time.Hour
)

const (
	otpDigits            = 6
	verificationTokenLen = cryptox.TokenSize256 // 64 hex characters
	generatedPasswordLen = 20
)

// Clock returns the current time.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}

// CodeGenerator returns a fresh one-time code.
type CodeGenerator func() (string, error)

func (g CodeGenerator) next() (string, error) {
	if g == nil {
		return cryptox.GenerateNumericCode(otpDigits)
	}
	return g()
}

// ClientInfo describes the caller of a request for audit entries.
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

type clientInfoKey struct{}

// WithClientInfo stores the caller's address and user agent in ctx.
func WithClientInfo(ctx context.Context, info ClientInfo) context.Context {
	return context.WithValue(ctx, clientInfoKey{}, info)
}

// ClientInfoFromContext returns what WithClientInfo stored, or the zero
// value.
func ClientInfoFromContext(ctx context.Context) ClientInfo {
	info, _ := ctx.Value(clientInfoKey{}).(ClientInfo)
	return info
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/securevoice/securevoice/internal/securevoice/domain"
	"github.com/stretchr/testify/require"
)

func TestProvisionSuperAdmin(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	res, err := h.superAdmins.Provision(ctx, ProvisionInput{
		Username: "superadmin",
		Email:    "superadmin@crime.gov.bd",
		FullName: "System Administrator",
	})
	require.NoError(t, err)
	require.Len(t, res.Password, generatedPasswordLen)
	require.Nil(t, res.TOTPKey)
	require.True(t, res.SuperAdmin.IsActive)
	require.Nil(t, res.SuperAdmin.TOTPSecret)

	sa, err := h.superAdmins.Login(ctx, "superadmin", res.Password, "")
	require.NoError(t, err)
	require.Equal(t, res.SuperAdmin.ID, sa.ID)
	require.NotNil(t, sa.LastLogin)

	t.Run("reprovision replaces the password", func(t *testing.T) {
		again, err := h.superAdmins.Provision(ctx, ProvisionInput{
			Username: "superadmin",
			Email:    "superadmin@crime.gov.bd",
			Password: "N3wSecretPass",
		})
		require.NoError(t, err)
		require.Empty(t, again.Password)
		require.Equal(t, res.SuperAdmin.ID, again.SuperAdmin.ID)

		_, err = h.superAdmins.Login(ctx, "superadmin", res.Password, "")
		require.ErrorIs(t, err, ErrInvalidCredentials)
		_, err = h.superAdmins.Login(ctx, "superadmin", "N3wSecretPass", "")
		require.NoError(t, err)
	})

	t.Run("validates input", func(t *testing.T) {
		_, err := h.superAdmins.Provision(ctx, ProvisionInput{Username: "x", Email: "a@b.cd"})
		require.ErrorIs(t, err, ErrUsernameFormat)
		_, err = h.superAdmins.Provision(ctx, ProvisionInput{Username: "root", Email: "nope"})
		require.ErrorIs(t, err, ErrEmailFormat)
		_, err = h.superAdmins.Provision(ctx, ProvisionInput{Username: "root", Email: "a@b.cd", Password: "short"})
		require.ErrorIs(t, err, ErrPasswordTooShort)
	})
}

func TestSuperAdminTOTP(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	res, err := h.superAdmins.Provision(ctx, ProvisionInput{
		Username: "superadmin",
		Email:    "superadmin@crime.gov.bd",
		Password: "SuperSecret1",
		TOTP:     true,
	})
	require.NoError(t, err)
	require.NotNil(t, res.TOTPKey)
	require.Equal(t, DefaultTOTPIssuer, res.TOTPKey.Issuer())
	require.NotNil(t, res.SuperAdmin.TOTPSecret)

	_, err = h.superAdmins.Login(ctx, "superadmin", "SuperSecret1", "")
	require.ErrorIs(t, err, ErrTOTPRequired)

	_, err = h.superAdmins.Login(ctx, "superadmin", "SuperSecret1", "000000")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	code, err := totp.GenerateCode(res.TOTPKey.Secret(), testEpoch)
	require.NoError(t, err)
	_, err = h.superAdmins.Login(ctx, "superadmin", "SuperSecret1", code)
	require.NoError(t, err)

	// One period of skew either side is accepted, two is not.
	h.clock.Set(testEpoch.Add(30 * time.Second))
	_, err = h.superAdmins.Login(ctx, "superadmin", "SuperSecret1", code)
	require.NoError(t, err)
	h.clock.Set(testEpoch.Add(90 * time.Second))
	_, err = h.superAdmins.Login(ctx, "superadmin", "SuperSecret1", code)
	require.ErrorIs(t, err, ErrInvalidCredentials)

	attempts, err := h.audit.Query(ctx, AuditQuery{AdminUsername: "superadmin", Action: domain.ActionLoginAttempt})
	require.NoError(t, err)
	require.Len(t, attempts, 2)
}

func TestSuperAdminLoginFailures(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.superAdmins.Login(ctx, "ghost", "whatever1", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.Equal(t, domain.KindUnauthorized, domain.KindOf(err))

	_, err = h.superAdmins.Login(ctx, "", "whatever1", "")
	require.ErrorIs(t, err, ErrCredentialsRequired)
}

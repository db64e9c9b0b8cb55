package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/securevoice/securevoice/internal/securevoice/domain"
	"github.com/securevoice/securevoice/internal/securevoice/store"
	"github.com/securevoice/securevoice/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testUser(username, email, nid string) domain.User {
	now := time.Now().UTC().Truncate(time.Second)
	age := 30
	return domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		Phone:        "01712345678",
		NID:          nid,
		PasswordHash: "hash",
		FullName:     "Rahim Uddin",
		DOB:          "1994-01-01",
		Age:          &age,
		Division:     "Dhaka",
		District:     "Dhaka",
		Location:     "Dhaka, Dhaka",
		IsVerified:   true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func testAdmin(username, email string) domain.Admin {
	return domain.Admin{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		FullName:     "Karim Ahmed",
		Phone:        "01811111111",
		Designation:  "Inspector",
		OfficialID:   "BP-1001",
		DistrictName: "Dhaka",
		CreatedAt:    time.Now().UTC(),
	}
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestUsersRoundTripAndLookups(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := testUser("rahim_01", "rahim@example.com", "1234567890")
	require.NoError(t, s.Users().CreateUser(ctx, u))

	got, err := s.Users().GetUserByUsername(ctx, "rahim_01")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, "1234567890", got.NID)
	require.NotNil(t, got.Age)
	require.Equal(t, 30, *got.Age)
	require.True(t, got.IsVerified)
	require.False(t, got.IsFaceVerified)
	require.True(t, u.CreatedAt.Equal(got.CreatedAt))

	byID, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Username, byID.Username)

	_, err = s.Users().GetUserByUsername(ctx, "nobody")
	require.ErrorIs(t, err, store.ErrNotFound)

	for name, check := range map[string]func() (bool, error){
		"username": func() (bool, error) { return s.Users().UsernameTaken(ctx, "rahim_01") },
		"email":    func() (bool, error) { return s.Users().EmailTaken(ctx, "rahim@example.com") },
		"phone":    func() (bool, error) { return s.Users().PhoneTaken(ctx, "01712345678") },
		"nid":      func() (bool, error) { return s.Users().NIDTaken(ctx, "1234567890") },
	} {
		taken, err := check()
		require.NoError(t, err, name)
		require.True(t, taken, name)
	}

	taken, err := s.Users().NIDTaken(ctx, "9999999999")
	require.NoError(t, err)
	require.False(t, taken)

	require.NoError(t, s.Users().UpdatePasswordHash(ctx, u.ID, "new-hash"))
	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "new-hash", got.PasswordHash)

	require.ErrorIs(t, s.Users().UpdatePasswordHash(ctx, "missing", "x"), store.ErrNotFound)
}

func TestUsersUniqueViolationsNameColumn(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Users().CreateUser(ctx, testUser("first", "first@example.com", "1111111111")))

	tests := []struct {
		name  string
		user  domain.User
		field string
	}{
		{"duplicate username", testUser("first", "other@example.com", "2222222222"), "username"},
		{"duplicate email", testUser("second", "first@example.com", "3333333333"), "email"},
		{"duplicate nid", testUser("third", "third@example.com", "1111111111"), "nid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Users().CreateUser(ctx, tt.user)
			require.ErrorIs(t, err, store.ErrAlreadyExists)

			var conflict *store.ConflictError
			require.True(t, errors.As(err, &conflict))
			require.Equal(t, "users", conflict.Table)
			require.Equal(t, tt.field, conflict.Field)
		})
	}

	// Users without an NID never collide on it.
	require.NoError(t, s.Users().CreateUser(ctx, testUser("nonid_a", "a@example.com", "")))
	require.NoError(t, s.Users().CreateUser(ctx, testUser("nonid_b", "b@example.com", "")))
}

func TestUpdateProfile(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := testUser("rahim", "rahim@example.com", "1234567890123")
	require.NoError(t, s.Users().CreateUser(ctx, u))

	u.FullName = "Rahim Uddin Ahmed"
	u.Phone = "01912345678"
	u.DOB = ""
	u.Age = nil
	u.Village = "Bagicha"
	u.Location = "Bagicha, Dhaka, Dhaka"
	u.UpdatedAt = u.CreatedAt.Add(time.Hour)
	u.NID = "9999999999" // not editable
	require.NoError(t, s.Users().UpdateProfile(ctx, u))

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "Rahim Uddin Ahmed", got.FullName)
	require.Equal(t, "01912345678", got.Phone)
	require.Empty(t, got.DOB)
	require.Nil(t, got.Age)
	require.Equal(t, "Bagicha", got.Village)
	require.Equal(t, "Bagicha, Dhaka, Dhaka", got.Location)
	require.True(t, u.UpdatedAt.Equal(got.UpdatedAt))
	require.Equal(t, "1234567890123", got.NID)

	u.ID = "missing"
	require.ErrorIs(t, s.Users().UpdateProfile(ctx, u), store.ErrNotFound)
}

func TestApprovalWorkflowLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	older := testAdmin("older", "older@police.gov.bd")
	newer := testAdmin("newer", "newer@police.gov.bd")
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	err := s.WithTx(ctx, func(tx store.Tx) error {
		for i, a := range []domain.Admin{older, newer} {
			if err := tx.Admins().CreateAdmin(ctx, a); err != nil {
				return err
			}
			if err := tx.Approvals().CreateWorkflow(ctx, domain.ApprovalWorkflow{
				AdminID:     a.ID,
				Status:      domain.ApprovalPending,
				RequestDate: base.Add(time.Duration(i) * time.Hour),
			}); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	pending := domain.ApprovalPending
	list, err := s.Approvals().ListRequests(ctx, domain.RequestFilter{Status: &pending})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "newer", list[0].Username, "newest request first")
	require.Equal(t, domain.ApprovalPending, list[0].Workflow.Status)

	approvedAt := base.Add(48 * time.Hour)
	require.NoError(t, s.Approvals().UpdateWorkflow(ctx, domain.ApprovalWorkflow{
		AdminID:      older.ID,
		Status:       domain.ApprovalApproved,
		RequestDate:  base,
		ApprovalDate: &approvedAt,
		ApprovedBy:   "superadmin",
	}, domain.ApprovalPending))
	require.NoError(t, s.Admins().SetPassword(ctx, older.ID, "hash"))

	w, err := s.Approvals().GetWorkflow(ctx, older.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ApprovalApproved, w.Status)
	require.Equal(t, "superadmin", w.ApprovedBy)
	require.NotNil(t, w.ApprovalDate)
	require.True(t, approvedAt.Equal(*w.ApprovalDate))

	all, err := s.Approvals().ListRequests(ctx, domain.RequestFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	none, err := s.Approvals().ListRequests(ctx, domain.RequestFilter{District: "Sylhet"})
	require.NoError(t, err)
	require.Empty(t, none)

	stats, err := s.Approvals().Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.ApprovalStats{Pending: 1, Approved: 1, ActiveAdmins: 1}, stats)

	a, err := s.Admins().GetAdminByUsername(ctx, "older")
	require.NoError(t, err)
	require.True(t, a.IsActive)
	require.NotNil(t, a.PasswordHash)

	require.NoError(t, s.Admins().SetActive(ctx, older.ID, false))
	stats, err = s.Approvals().Stats(ctx)
	require.NoError(t, err)
	require.Zero(t, stats.ActiveAdmins)

	err = s.Approvals().UpdateWorkflow(ctx, domain.ApprovalWorkflow{AdminID: "missing", Status: domain.ApprovalRejected}, domain.ApprovalPending)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateWorkflowComparesStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := testAdmin("karim", "karim@police.gov.bd")
	require.NoError(t, s.Admins().CreateAdmin(ctx, a))
	require.NoError(t, s.Approvals().CreateWorkflow(ctx, domain.ApprovalWorkflow{
		AdminID:     a.ID,
		Status:      domain.ApprovalPending,
		RequestDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}))

	approved := domain.ApprovalWorkflow{AdminID: a.ID, Status: domain.ApprovalApproved, ApprovedBy: "superadmin"}
	require.NoError(t, s.Approvals().UpdateWorkflow(ctx, approved, domain.ApprovalPending))

	rejected := domain.ApprovalWorkflow{AdminID: a.ID, Status: domain.ApprovalRejected, RejectionReason: "late"}
	err := s.Approvals().UpdateWorkflow(ctx, rejected, domain.ApprovalPending)
	require.ErrorIs(t, err, store.ErrNotFound)

	w, err := s.Approvals().GetWorkflow(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ApprovalApproved, w.Status)
	require.Equal(t, "superadmin", w.ApprovedBy)
	require.Empty(t, w.RejectionReason)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := testAdmin("rollback", "rollback@police.gov.bd")
	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Admins().CreateAdmin(ctx, a); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Admins().GetAdminByID(ctx, a.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestVerificationTokensAreSingleUse(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := testAdmin("tok", "tok@police.gov.bd")
	require.NoError(t, s.Admins().CreateAdmin(ctx, a))

	now := time.Now().UTC()
	first := domain.VerificationToken{
		ID: idx.New().String(), AdminID: a.ID, Type: domain.TokenEmailVerification,
		TokenHash: "hash-1", ExpiresAt: now.Add(time.Hour), CreatedAt: now.Add(-time.Minute),
	}
	second := domain.VerificationToken{
		ID: idx.New().String(), AdminID: a.ID, Type: domain.TokenEmailVerification,
		TokenHash: "hash-2", ExpiresAt: now.Add(time.Hour), CreatedAt: now,
	}
	require.NoError(t, s.VerificationTokens().CreateToken(ctx, first))
	require.NoError(t, s.VerificationTokens().CreateToken(ctx, second))

	_, err := s.VerificationTokens().GetTokenByHash(ctx, domain.TokenPasswordSetup, "hash-1")
	require.ErrorIs(t, err, store.ErrNotFound, "type must match")

	got, err := s.VerificationTokens().GetTokenByHash(ctx, domain.TokenEmailVerification, "hash-1")
	require.NoError(t, err)
	require.False(t, got.IsUsed)

	latest, err := s.VerificationTokens().LatestToken(ctx, a.ID, domain.TokenEmailVerification)
	require.NoError(t, err)
	require.Equal(t, second.ID, latest.ID)

	require.NoError(t, s.VerificationTokens().MarkTokenUsed(ctx, first.ID, now))
	require.ErrorIs(t, s.VerificationTokens().MarkTokenUsed(ctx, first.ID, now), store.ErrNotFound)

	got, err = s.VerificationTokens().GetTokenByHash(ctx, domain.TokenEmailVerification, "hash-1")
	require.NoError(t, err)
	require.True(t, got.IsUsed)
	require.NotNil(t, got.UsedAt)
}

func TestAdminOTPs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := testAdmin("otp", "otp@police.gov.bd")
	require.NoError(t, s.Admins().CreateAdmin(ctx, a))

	now := time.Now().UTC()
	stale := domain.AdminOTP{ID: idx.New().String(), AdminID: a.ID, Code: "111111", ExpiresAt: now.Add(-time.Minute), CreatedAt: now.Add(-11 * time.Minute)}
	live := domain.AdminOTP{ID: idx.New().String(), AdminID: a.ID, Code: "222222", ExpiresAt: now.Add(10 * time.Minute), CreatedAt: now}
	require.NoError(t, s.AdminOTPs().CreateOTP(ctx, stale))
	require.NoError(t, s.AdminOTPs().CreateOTP(ctx, live))

	got, err := s.AdminOTPs().FindUnusedOTP(ctx, a.ID, "222222")
	require.NoError(t, err)
	require.Equal(t, live.ID, got.ID)

	_, err = s.AdminOTPs().FindUnusedOTP(ctx, a.ID, "333333")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.AdminOTPs().MarkOTPUsed(ctx, live.ID))
	require.ErrorIs(t, s.AdminOTPs().MarkOTPUsed(ctx, live.ID), store.ErrNotFound)
	_, err = s.AdminOTPs().FindUnusedOTP(ctx, a.ID, "222222")
	require.ErrorIs(t, err, store.ErrNotFound)

	fresh := domain.AdminOTP{ID: idx.New().String(), AdminID: a.ID, Code: "444444", ExpiresAt: now.Add(10 * time.Minute), CreatedAt: now}
	require.NoError(t, s.AdminOTPs().CreateOTP(ctx, fresh))

	// One expired and one used challenge are stale; the fresh one survives.
	removed, err := s.AdminOTPs().DeleteStaleOTPs(ctx, now)
	require.NoError(t, err)
	require.Equal(t, int64(2), removed)

	require.NoError(t, s.AdminOTPs().InvalidateOTPs(ctx, a.ID))
	_, err = s.AdminOTPs().FindUnusedOTP(ctx, a.ID, "444444")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestAuditLogQueryFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	complaint := int64(42)
	entries := []domain.AuditEntry{
		{Actor: "karim", Action: domain.ActionLogin, Result: domain.AuditSuccess, Timestamp: base},
		{Actor: "karim", Action: domain.ActionLogout, Result: domain.AuditSuccess, Timestamp: base.Add(24 * time.Hour)},
		{Actor: "superadmin", Action: domain.ActionApproveAdmin, Result: domain.AuditSuccess, TargetUsername: "karim", Timestamp: base.Add(48 * time.Hour)},
		{Actor: "karim", Action: domain.ActionLogin, Result: domain.AuditFailure, ComplaintID: &complaint, Timestamp: base.Add(72 * time.Hour)},
	}
	for _, e := range entries {
		e.ID = idx.New().String()
		require.NoError(t, s.AuditLogs().AppendAuditLog(ctx, e))
	}

	all, err := s.AuditLogs().QueryAuditLogs(ctx, domain.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	require.Equal(t, domain.AuditFailure, all[0].Result, "newest first")
	require.NotNil(t, all[0].ComplaintID)
	require.Equal(t, int64(42), *all[0].ComplaintID)

	from := base.Add(24 * time.Hour)
	to := base.Add(72 * time.Hour)
	tests := []struct {
		name   string
		filter domain.AuditFilter
		want   int
	}{
		{"by actor", domain.AuditFilter{Actor: "karim"}, 3},
		{"by action", domain.AuditFilter{Action: domain.ActionLogin}, 2},
		{"from inclusive", domain.AuditFilter{From: &from}, 3},
		{"to exclusive", domain.AuditFilter{To: &to}, 3},
		{"range", domain.AuditFilter{From: &from, To: &to}, 2},
		{"limit", domain.AuditFilter{Limit: 1}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.AuditLogs().QueryAuditLogs(ctx, tt.filter)
			require.NoError(t, err)
			require.Len(t, got, tt.want)
		})
	}

	got, err := s.AuditLogs().QueryAuditLogs(ctx, domain.AuditFilter{Action: domain.ActionApproveAdmin})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "karim", got[0].TargetUsername)
}

func TestSuperAdminUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sa := domain.SuperAdmin{
		ID:           idx.New().String(),
		Username:     "superadmin",
		Email:        "superadmin@crime.gov.bd",
		FullName:     "System Super Administrator",
		PasswordHash: "first",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, s.SuperAdmins().UpsertSuperAdmin(ctx, sa))

	secret := "JBSWY3DPEHPK3PXP"
	sa2 := sa
	sa2.ID = idx.New().String()
	sa2.PasswordHash = "second"
	sa2.TOTPSecret = &secret
	require.NoError(t, s.SuperAdmins().UpsertSuperAdmin(ctx, sa2))

	got, err := s.SuperAdmins().GetSuperAdminByUsername(ctx, "superadmin")
	require.NoError(t, err)
	require.Equal(t, sa.ID, got.ID, "update keeps the original id")
	require.Equal(t, "second", got.PasswordHash)
	require.NotNil(t, got.TOTPSecret)
	require.True(t, got.IsActive)

	at := time.Now().UTC()
	require.NoError(t, s.SuperAdmins().UpdateSuperAdminLastLogin(ctx, got.ID, at))
	got, err = s.SuperAdmins().GetSuperAdminByID(ctx, got.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLogin)

	require.NoError(t, s.SuperAdmins().UpdateSuperAdminPasswordHash(ctx, got.ID, "third"))
	got, err = s.SuperAdmins().GetSuperAdminByID(ctx, got.ID)
	require.NoError(t, err)
	require.Equal(t, "third", got.PasswordHash)
}

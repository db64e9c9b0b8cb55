package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/securevoice/securevoice/internal/securevoice/domain"
	"github.com/securevoice/securevoice/internal/securevoice/ephemeral"
	"github.com/securevoice/securevoice/internal/securevoice/store"
	"github.com/stretchr/testify/require"
)

func TestSendOTPGeneratesSixDigitCodes(t *testing.T) {
	h := newHarness(t)
	h.registration.Codes = nil
	ctx := context.Background()

	for i := range 20 {
		phone := "0171234567" + string(rune('0'+i%10))
		res, err := h.registration.SendOTP(ctx, SendOTPInput{Phone: phone})
		require.NoError(t, err)
		require.Regexp(t, regexp.MustCompile(`^\d{6}$`), res.DevOTP)
	}
}

func TestSendOTPOpensSession(t *testing.T) {
	h := newHarness(t)
	h.registration.DevEcho = false
	ctx := context.Background()

	res, err := h.registration.SendOTP(ctx, SendOTPInput{Phone: " 01712345678 "})
	require.NoError(t, err)
	require.NotEmpty(t, res.SessionID)
	require.Empty(t, res.DevOTP, "codes are not echoed without DevEcho")
	require.Equal(t, testEpoch.Add(RegistrationOTPTTL), res.ExpiresAt)

	sess, err := h.registration.RegistrationStatus(ctx, res.SessionID)
	require.NoError(t, err)
	require.Equal(t, domain.StepOTPSent, sess.Step)
	require.Equal(t, "01712345678", sess.Phone)
	require.False(t, sess.OTPVerified)
	require.Equal(t, testEpoch.Add(RegistrationSessionTTL), sess.ExpiresAt)

	require.Empty(t, h.mailer.messages(), "phone codes are never emailed")
}

func TestSendOTPByEmail(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.registration.SendOTP(ctx, SendOTPInput{Email: "rahim@example.com"})
	require.NoError(t, err)

	msgs := h.mailer.messages()
	require.Len(t, msgs, 1)
	require.Equal(t, "rahim@example.com", msgs[0].To)
	require.Contains(t, msgs[0].HTML, "123456")

	t.Run("delivery failure is not fatal", func(t *testing.T) {
		h.mailer.fail(errors.New("relay down"))
		res, err := h.registration.SendOTP(ctx, SendOTPInput{Email: "karim@example.com"})
		require.NoError(t, err)
		require.NotEmpty(t, res.SessionID)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		_, err := h.registration.SendOTP(ctx, SendOTPInput{Email: "not-an-email"})
		require.ErrorIs(t, err, ErrEmailFormat)
	})

	t.Run("requires an identifier", func(t *testing.T) {
		_, err := h.registration.SendOTP(ctx, SendOTPInput{})
		require.ErrorIs(t, err, ErrIdentifierRequired)
	})
}

func TestSendOTPRejectsRegisteredIdentifiers(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.registerUser(t, "01712345678", "1234567890123", "rahim")

	_, err := h.registration.SendOTP(ctx, SendOTPInput{Phone: "01712345678"})
	require.ErrorIs(t, err, ErrPhoneRegistered)
	require.Equal(t, domain.KindConflict, domain.KindOf(err))

	_, err = h.registration.SendOTP(ctx, SendOTPInput{Email: "rahim@example.com"})
	require.ErrorIs(t, err, ErrEmailRegistered)
}

func TestSendOTPReplacesLiveCode(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	codes := []string{"111111", "222222"}
	h.registration.Codes = func() (string, error) {
		c := codes[0]
		codes = codes[1:]
		return c, nil
	}

	_, err := h.registration.SendOTP(ctx, SendOTPInput{Phone: "01712345678"})
	require.NoError(t, err)
	h.clock.Advance(time.Minute)
	second, err := h.registration.SendOTP(ctx, SendOTPInput{Phone: "01712345678"})
	require.NoError(t, err)

	rec, err := h.otps.Get(ctx, "01712345678")
	require.NoError(t, err)
	require.Equal(t, "222222", rec.Code)
	require.Equal(t, 1, rec.ResendCount)
	require.Equal(t, testEpoch, rec.FirstSentAt)

	// The replaced code no longer verifies.
	_, err = h.registration.VerifyOTP(ctx, VerifyOTPInput{Phone: "01712345678", OTP: "111111", SessionID: second.SessionID})
	require.ErrorIs(t, err, ErrOTPInvalid)
	_, err = h.registration.VerifyOTP(ctx, VerifyOTPInput{Phone: "01712345678", OTP: "222222", SessionID: second.SessionID})
	require.NoError(t, err)
}

// Scenario A: a wrong code is rejected, the right one advances the session
// and cannot be replayed.
func TestVerifyOTPScenario(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	sent, err := h.registration.SendOTP(ctx, SendOTPInput{Phone: "01712345678"})
	require.NoError(t, err)
	require.Equal(t, "123456", sent.DevOTP)

	_, err = h.registration.VerifyOTP(ctx, VerifyOTPInput{Phone: "01712345678", OTP: "000000", SessionID: sent.SessionID})
	require.ErrorIs(t, err, ErrOTPInvalid)
	require.Contains(t, domain.MessageOf(err), "Invalid OTP")

	sess, err := h.registration.VerifyOTP(ctx, VerifyOTPInput{Phone: "01712345678", OTP: "123456", SessionID: sent.SessionID})
	require.NoError(t, err)
	require.Equal(t, domain.StepOTPVerified, sess.Step)
	require.True(t, sess.OTPVerified)

	_, err = h.registration.VerifyOTP(ctx, VerifyOTPInput{Phone: "01712345678", OTP: "123456", SessionID: sent.SessionID})
	require.ErrorIs(t, err, ErrOTPUsed)
	require.Equal(t, domain.KindInvalid, domain.KindOf(err))
}

func TestVerifyOTPRejects(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	sent, err := h.registration.SendOTP(ctx, SendOTPInput{Phone: "01712345678"})
	require.NoError(t, err)

	tests := []struct {
		name string
		in   VerifyOTPInput
		want error
	}{
		{"missing identifier", VerifyOTPInput{OTP: "123456", SessionID: sent.SessionID}, ErrIdentifierRequired},
		{"missing code", VerifyOTPInput{Phone: "01712345678", SessionID: sent.SessionID}, ErrOTPRequired},
		{"missing session", VerifyOTPInput{Phone: "01712345678", OTP: "123456"}, ErrSessionRequired},
		{"unknown session", VerifyOTPInput{Phone: "01712345678", OTP: "123456", SessionID: "nope"}, ErrSessionNotFound},
		{"session of another identifier", VerifyOTPInput{Phone: "01898765432", OTP: "123456", SessionID: sent.SessionID}, ErrSessionMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.registration.VerifyOTP(ctx, tt.in)
			require.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("no code issued", func(t *testing.T) {
		require.NoError(t, h.otps.Delete(ctx, "01712345678"))
		_, err := h.registration.VerifyOTP(ctx, VerifyOTPInput{Phone: "01712345678", OTP: "123456", SessionID: sent.SessionID})
		require.ErrorIs(t, err, ErrOTPNotFound)
		require.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})
}

func TestVerifyOTPExpiryBoundary(t *testing.T) {
	t.Run("just before expiry", func(t *testing.T) {
		h := newHarness(t)
		ctx := context.Background()
		sent, err := h.registration.SendOTP(ctx, SendOTPInput{Phone: "01712345678"})
		require.NoError(t, err)

		h.clock.Set(sent.ExpiresAt.Add(-time.Millisecond))
		_, err = h.registration.VerifyOTP(ctx, VerifyOTPInput{Phone: "01712345678", OTP: "123456", SessionID: sent.SessionID})
		require.NoError(t, err)
	})

	t.Run("just after expiry", func(t *testing.T) {
		h := newHarness(t)
		ctx := context.Background()
		sent, err := h.registration.SendOTP(ctx, SendOTPInput{Phone: "01712345678"})
		require.NoError(t, err)

		h.clock.Set(sent.ExpiresAt.Add(time.Millisecond))
		_, err = h.registration.VerifyOTP(ctx, VerifyOTPInput{Phone: "01712345678", OTP: "123456", SessionID: sent.SessionID})
		require.ErrorIs(t, err, ErrOTPExpired)
		require.Equal(t, domain.KindExpired, domain.KindOf(err))

		_, err = h.otps.Get(ctx, "01712345678")
		require.ErrorIs(t, err, ephemeral.ErrNotFound, "expired record is deleted")
	})
}

func TestRegistrationSessionExpiry(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	sent, err := h.registration.SendOTP(ctx, SendOTPInput{Phone: "01712345678"})
	require.NoError(t, err)
	_, err = h.registration.VerifyOTP(ctx, VerifyOTPInput{Phone: "01712345678", OTP: "123456", SessionID: sent.SessionID})
	require.NoError(t, err)

	expires := testEpoch.Add(RegistrationSessionTTL)

	h.clock.Set(expires.Add(-time.Millisecond))
	_, err = h.registration.VerifyNID(ctx, VerifyNIDInput{NID: "1234567890", SessionID: sent.SessionID})
	require.NoError(t, err)

	h.clock.Set(expires.Add(time.Millisecond))
	_, err = h.registration.SaveFace(ctx, sent.SessionID, "data:image/png;base64,AAAA")
	require.ErrorIs(t, err, ErrSessionExpired)

	_, err = h.registration.RegistrationStatus(ctx, sent.SessionID)
	require.ErrorIs(t, err, ErrSessionNotFound, "expired session is dropped on read")
}

// Scenario B: a registered NID is refused, a fresh one advances the session.
func TestVerifyNIDScenario(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.registerUser(t, "01700000000", "1234567890123", "existing")

	sent, err := h.registration.SendOTP(ctx, SendOTPInput{Phone: "01712345678"})
	require.NoError(t, err)
	_, err = h.registration.VerifyOTP(ctx, VerifyOTPInput{Phone: "01712345678", OTP: "123456", SessionID: sent.SessionID})
	require.NoError(t, err)

	in := VerifyNIDInput{
		NID:        "1234567890123",
		DOB:        "1990-01-01",
		NameEn:     "Jane Doe",
		FatherName: "X",
		MotherName: "Y",
		SessionID:  sent.SessionID,
	}
	_, err = h.registration.VerifyNID(ctx, in)
	require.ErrorIs(t, err, ErrNIDRegistered)
	require.Equal(t, "This NID is already registered", domain.MessageOf(err))

	in.NID = "9876543210987"
	sess, err := h.registration.VerifyNID(ctx, in)
	require.NoError(t, err)
	require.Equal(t, domain.StepNIDVerified, sess.Step)
	require.True(t, sess.NIDVerified)
	require.Equal(t, "Jane Doe", sess.Data.NameEn)
	require.Equal(t, "1990-01-01", sess.Data.DOB)
}

func TestVerifyNIDValidation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	sent, err := h.registration.SendOTP(ctx, SendOTPInput{Phone: "01712345678"})
	require.NoError(t, err)

	tests := []struct {
		name string
		nid  string
		dob  string
		want error
	}{
		{"empty", "  ", "", ErrNIDRequired},
		{"too short", "12345", "", ErrNIDFormat},
		{"eleven digits", "12345678901", "", ErrNIDFormat},
		{"bad dob", "1234567890", "01/01/1990", ErrDOBFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.registration.VerifyNID(ctx, VerifyNIDInput{NID: tt.nid, DOB: tt.dob, SessionID: sent.SessionID})
			require.ErrorIs(t, err, tt.want)
			require.Equal(t, domain.KindValidation, domain.KindOf(err))
		})
	}

	t.Run("separators are stripped", func(t *testing.T) {
		sess, err := h.registration.VerifyNID(ctx, VerifyNIDInput{NID: "123 456-7890", SessionID: sent.SessionID})
		require.NoError(t, err)
		require.Equal(t, "1234567890", sess.Data.NID)
	})
}

func TestSaveFaceAndAddress(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	sent, err := h.registration.SendOTP(ctx, SendOTPInput{Phone: "01712345678"})
	require.NoError(t, err)

	_, err = h.registration.SaveFace(ctx, sent.SessionID, "")
	require.ErrorIs(t, err, ErrFaceRequired)
	_, err = h.registration.SaveFace(ctx, sent.SessionID, "iVBORw0KGgo=")
	require.ErrorIs(t, err, ErrFaceFormat)

	sess, err := h.registration.SaveFace(ctx, sent.SessionID, "data:image/jpeg;base64,/9j/4AAQ")
	require.NoError(t, err)
	require.True(t, sess.FaceVerified)
	require.Equal(t, domain.StepFaceSaved, sess.Step)

	_, err = h.registration.SaveAddress(ctx, AddressInput{Division: "Dhaka", SessionID: sent.SessionID})
	require.ErrorIs(t, err, ErrAddressRequired)

	sess, err = h.registration.SaveAddress(ctx, AddressInput{
		Division:      "Dhaka",
		District:      "Dhaka",
		PoliceStation: "Mirpur",
		Village:       "Kalshi",
		PlaceDetails:  "Road 4",
		SessionID:     sent.SessionID,
	})
	require.NoError(t, err)
	require.Equal(t, domain.StepAddressSaved, sess.Step)
	require.Equal(t, "Kalshi, Mirpur, Dhaka, Dhaka", sess.Data.Location)
	require.Equal(t, "data:image/jpeg;base64,/9j/4AAQ", sess.Data.FaceImage, "data accumulates")
}

func TestStepNeverDecreases(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	sent, err := h.registration.SendOTP(ctx, SendOTPInput{Phone: "01712345678"})
	require.NoError(t, err)

	_, err = h.registration.SaveAddress(ctx, AddressInput{Division: "Dhaka", District: "Dhaka", SessionID: sent.SessionID})
	require.NoError(t, err)

	// Lenient ordering lets earlier steps run afterwards without moving back.
	sess, err := h.registration.VerifyOTP(ctx, VerifyOTPInput{Phone: "01712345678", OTP: "123456", SessionID: sent.SessionID})
	require.NoError(t, err)
	require.Equal(t, domain.StepAddressSaved, sess.Step)
	require.True(t, sess.OTPVerified)

	sess, err = h.registration.SaveFace(ctx, sent.SessionID, "data:image/png;base64,AAAA")
	require.NoError(t, err)
	require.Equal(t, domain.StepAddressSaved, sess.Step)
	require.Equal(t, "Dhaka, Dhaka", sess.Data.Location)
}

func TestEnforcedStepOrder(t *testing.T) {
	h := newHarness(t)
	h.registration.EnforceStepOrder = true
	ctx := context.Background()

	sent, err := h.registration.SendOTP(ctx, SendOTPInput{Phone: "01712345678"})
	require.NoError(t, err)

	_, err = h.registration.VerifyNID(ctx, VerifyNIDInput{NID: "1234567890", SessionID: sent.SessionID})
	require.ErrorIs(t, err, ErrStepOrder)
	require.Equal(t, domain.KindForbidden, domain.KindOf(err))

	_, err = h.registration.Signup(ctx, SignupInput{Username: "rahim", Email: "rahim@example.com", Password: "password123"})
	require.ErrorIs(t, err, ErrSessionRequired, "strict mode has no direct-field fallback")

	_, err = h.registration.VerifyOTP(ctx, VerifyOTPInput{Phone: "01712345678", OTP: "123456", SessionID: sent.SessionID})
	require.NoError(t, err)
	_, err = h.registration.VerifyNID(ctx, VerifyNIDInput{NID: "1234567890", SessionID: sent.SessionID})
	require.NoError(t, err)

	_, err = h.registration.SaveAddress(ctx, AddressInput{Division: "Dhaka", District: "Dhaka", SessionID: sent.SessionID})
	require.ErrorIs(t, err, ErrStepOrder, "face capture is still missing")

	_, err = h.registration.Signup(ctx, SignupInput{Username: "rahim", Email: "rahim@example.com", Password: "password123", SessionID: sent.SessionID})
	require.ErrorIs(t, err, ErrStepOrder)
}

func TestSignupFromSession(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	sent, err := h.registration.SendOTP(ctx, SendOTPInput{Phone: "01712345678"})
	require.NoError(t, err)
	u := h.registerUserFrom(t, sent.SessionID)

	require.Equal(t, "rahim", u.Username)
	require.Equal(t, "01712345678", u.Phone)
	require.Equal(t, "1234567890123", u.NID)
	require.Equal(t, "Rahim Uddin", u.FullName)
	require.NotNil(t, u.Age)
	require.Equal(t, 24, *u.Age, "dob 2000-06-15 on 2024-06-15")
	require.True(t, u.IsVerified)
	require.True(t, u.IsNIDVerified)
	require.True(t, u.IsFaceVerified)
	require.Equal(t, "Mirpur, Dhaka, Dhaka", u.Location)

	stored, err := h.store.Users().GetUserByUsername(ctx, "rahim")
	require.NoError(t, err)
	require.Equal(t, u.ID, stored.ID)
	require.NotEqual(t, "password123", stored.PasswordHash)

	_, err = h.sessions.Get(ctx, sent.SessionID)
	require.ErrorIs(t, err, ephemeral.ErrNotFound, "session is deleted")
	_, err = h.otps.Get(ctx, "01712345678")
	require.ErrorIs(t, err, ephemeral.ErrNotFound, "otp is deleted")

	msgs := h.mailer.messages()
	require.NotEmpty(t, msgs)
	require.Equal(t, "rahim@example.com", msgs[len(msgs)-1].To, "welcome email")

	logged, err := h.users.Login(ctx, "rahim", "password123")
	require.NoError(t, err)
	require.Equal(t, u.ID, logged.ID)
}

// registerUserFrom finishes steps 2 to 6 for an open phone session.
func (h *harness) registerUserFrom(t *testing.T, sessionID string) domain.User {
	t.Helper()
	ctx := context.Background()
	_, err := h.registration.VerifyOTP(ctx, VerifyOTPInput{Phone: "01712345678", OTP: "123456", SessionID: sessionID})
	require.NoError(t, err)
	_, err = h.registration.VerifyNID(ctx, VerifyNIDInput{NID: "1234567890123", DOB: "2000-06-15", NameEn: "Rahim Uddin", SessionID: sessionID})
	require.NoError(t, err)
	_, err = h.registration.SaveFace(ctx, sessionID, "data:image/png;base64,AAAA")
	require.NoError(t, err)
	_, err = h.registration.SaveAddress(ctx, AddressInput{Division: "Dhaka", District: "Dhaka", PoliceStation: "Mirpur", SessionID: sessionID})
	require.NoError(t, err)
	u, err := h.registration.Signup(ctx, SignupInput{Username: "rahim", Email: "rahim@example.com", Password: "password123", SessionID: sessionID})
	require.NoError(t, err)
	return u
}

func TestSignupDirectFields(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	in := SignupInput{
		Username: "karim",
		Email:    "karim@example.com",
		Password: "password123",
		Phone:    "01898765432",
	}
	in.NID = "1234-567-890"
	in.NameEn = "Karim"
	in.DOB = "2000-06-16"
	in.Division = "Sylhet"
	in.District = "Sylhet"

	u, err := h.registration.Signup(ctx, in)
	require.NoError(t, err)
	require.Equal(t, "1234567890", u.NID)
	require.Equal(t, 23, *u.Age)
	require.False(t, u.IsFaceVerified)
	require.Equal(t, "Sylhet, Sylhet", u.Location)

	t.Run("unknown session falls back too", func(t *testing.T) {
		u, err := h.registration.Signup(ctx, SignupInput{Username: "nasir", Email: "nasir@example.com", Password: "password123", SessionID: "gone"})
		require.NoError(t, err)
		require.Nil(t, u.Age)
		require.False(t, u.IsNIDVerified)
	})
}

func TestSignupValidation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   SignupInput
		want error
	}{
		{"short username", SignupInput{Username: "ab", Email: "a@example.com", Password: "password123"}, ErrUsernameFormat},
		{"long username", SignupInput{Username: strings.Repeat("a", 51), Email: "a@example.com", Password: "password123"}, ErrUsernameFormat},
		{"username with dash", SignupInput{Username: "ra-him", Email: "a@example.com", Password: "password123"}, ErrUsernameFormat},
		{"bad email", SignupInput{Username: "rahim", Email: "rahim.example.com", Password: "password123"}, ErrEmailFormat},
		{"short password", SignupInput{Username: "rahim", Email: "a@example.com", Password: "1234567"}, ErrPasswordTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.registration.Signup(ctx, tt.in)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSignupUniqueness(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.registerUser(t, "01700000000", "1234567890123", "rahim")

	tests := []struct {
		name string
		in   func(i int) SignupInput
		want error
	}{
		{
			name: "username",
			in: func(i int) SignupInput {
				return SignupInput{Username: "rahim", Email: "other" + string(rune('a'+i)) + "@example.com", Password: "password123"}
			},
			want: ErrUsernameTaken,
		},
		{
			name: "email",
			in: func(i int) SignupInput {
				return SignupInput{Username: "other_" + string(rune('a'+i)), Email: "rahim@example.com", Password: "password123"}
			},
			want: ErrEmailTaken,
		},
		{
			name: "nid",
			in: func(i int) SignupInput {
				in := SignupInput{Username: "other_" + string(rune('a'+i)), Email: "other" + string(rune('a'+i)) + "@example.com", Password: "password123"}
				in.NID = "1234567890123"
				return in
			},
			want: ErrNIDRegistered,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Repeated attempts with varying other fields fail the same way.
			for i := range 3 {
				_, err := h.registration.Signup(ctx, tt.in(i))
				require.ErrorIs(t, err, tt.want)
				require.Equal(t, domain.KindConflict, domain.KindOf(err))
			}
		})
	}
}

func TestMapUserConflict(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, mapUserConflict(&store.ConflictError{Table: "users", Field: "username"}), ErrUsernameTaken)
	require.ErrorIs(t, mapUserConflict(&store.ConflictError{Table: "users", Field: "email"}), ErrEmailTaken)
	require.ErrorIs(t, mapUserConflict(&store.ConflictError{Table: "users", Field: "nid"}), ErrNIDRegistered)

	other := mapUserConflict(errors.New("disk full"))
	require.Empty(t, domain.KindOf(other))
}

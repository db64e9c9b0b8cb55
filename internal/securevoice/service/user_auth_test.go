package service

import (
	"context"
	"testing"
	"time"

	"github.com/securevoice/securevoice/internal/securevoice/domain"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfile(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	rahim := h.registerUser(t, "01712345678", "1234567890123", "rahim")
	h.registerUser(t, "01812345678", "9876543210", "karima")
	h.clock.Advance(48 * time.Hour)

	u, err := h.users.UpdateProfile(ctx, rahim.ID, ProfileInput{
		FullName:      "  Rahim Uddin Ahmed ",
		Phone:         "01912345678",
		DOB:           "1990-06-18",
		Division:      "Chattogram",
		District:      "Cumilla",
		PoliceStation: "Kotwali",
		Village:       "Bagicha",
		PlaceDetails:  "Near the mosque",
	})
	require.NoError(t, err)
	require.Equal(t, "Rahim Uddin Ahmed", u.FullName)
	require.NotNil(t, u.Age)
	require.Equal(t, 33, *u.Age, "dob 1990-06-18 on 2024-06-17")
	require.Equal(t, "Bagicha, Kotwali, Cumilla, Chattogram", u.Location)

	stored, err := h.store.Users().GetUserByID(ctx, rahim.ID)
	require.NoError(t, err)
	require.Equal(t, "01912345678", stored.Phone)
	require.Equal(t, "1990-06-18", stored.DOB)
	require.Equal(t, 33, *stored.Age)
	require.Equal(t, "Near the mosque", stored.PlaceDetails)
	require.Equal(t, u.Location, stored.Location)
	require.True(t, stored.UpdatedAt.After(stored.CreatedAt))
	require.Equal(t, rahim.NID, stored.NID, "identity fields are untouched")
	require.Equal(t, rahim.Email, stored.Email)
	require.True(t, stored.IsNIDVerified)

	t.Run("free text location without address parts", func(t *testing.T) {
		u, err := h.users.UpdateProfile(ctx, rahim.ID, ProfileInput{
			FullName: "Rahim Uddin Ahmed",
			Phone:    "01912345678",
			Location: "House 12, Road 4, Dhanmondi",
		})
		require.NoError(t, err)
		require.Equal(t, "House 12, Road 4, Dhanmondi", u.Location)
		require.Empty(t, u.DOB)
		require.Nil(t, u.Age, "clearing dob clears the age")
	})

	t.Run("phone owned by another citizen", func(t *testing.T) {
		_, err := h.users.UpdateProfile(ctx, rahim.ID, ProfileInput{FullName: "Rahim", Phone: "01812345678"})
		require.ErrorIs(t, err, ErrPhoneRegistered)
		require.Equal(t, domain.KindConflict, domain.KindOf(err))
	})

	t.Run("bad dob", func(t *testing.T) {
		_, err := h.users.UpdateProfile(ctx, rahim.ID, ProfileInput{FullName: "Rahim", DOB: "18/06/1990"})
		require.ErrorIs(t, err, ErrDOBFormat)
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := h.users.UpdateProfile(ctx, rahim.ID, ProfileInput{FullName: "   "})
		require.ErrorIs(t, err, ErrFullNameRequired)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := h.users.UpdateProfile(ctx, "missing", ProfileInput{FullName: "Nobody"})
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

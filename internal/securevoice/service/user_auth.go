package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/securevoice/securevoice/internal/securevoice/domain"
	"github.com/securevoice/securevoice/internal/securevoice/store"
	"github.com/securevoice/securevoice/pkg/cryptox"
	"github.com/securevoice/securevoice/pkg/slogx"
)

type UserAuthService struct {
	Store store.Store
	Clock Clock
}

// Login checks citizen credentials. Legacy bcrypt hashes are upgraded on
// success.
func (s *UserAuthService) Login(ctx context.Context, username, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.User{}, ErrCredentialsRequired
	}

	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrInvalidLogin
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("load user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			slogx.FromContext(ctx).Error("user password hash unreadable", slog.String("user_id", u.ID), slog.Any("error", err))
		}
		return domain.User{}, ErrInvalidLogin
	}

	if cryptox.NeedsRehash(u.PasswordHash) {
		if hash, err := cryptox.HashPassword(password); err == nil {
			if err := s.Store.Users().UpdatePasswordHash(ctx, u.ID, hash); err != nil {
				slogx.FromContext(ctx).Warn("password rehash failed", slog.String("user_id", u.ID), slog.Any("error", err))
			} else {
				u.PasswordHash = hash
			}
		}
	}
	return u, nil
}

// User fetches a citizen by id.
func (s *UserAuthService) User(ctx context.Context, id string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

// ProfileInput replaces a citizen's editable profile. Address parts, when
// any is given, are rendered into the location; otherwise Location is kept
// as written. An empty DOB clears the date and the age.
type ProfileInput struct {
	FullName      string
	Phone         string
	DOB           string // YYYY-MM-DD
	Division      string
	District      string
	PoliceStation string
	Union         string
	Village       string
	PlaceDetails  string
	Location      string
}

// UpdateProfile applies in to the citizen's own record and re-derives the
// age from the date of birth.
func (s *UserAuthService) UpdateProfile(ctx context.Context, id string, in ProfileInput) (domain.User, error) {
	u, err := s.User(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		return domain.User{}, ErrFullNameRequired
	}

	now := s.Clock.now()
	var age *int
	dob := strings.TrimSpace(in.DOB)
	if dob != "" {
		born, err := ParseDOB(dob)
		if err != nil {
			return domain.User{}, ErrDOBFormat
		}
		a := AgeAt(born, now)
		age = &a
	}

	phone := strings.TrimSpace(in.Phone)
	if phone != "" && phone != u.Phone {
		taken, err := s.Store.Users().PhoneTaken(ctx, phone)
		if err != nil {
			return domain.User{}, fmt.Errorf("check phone: %w", err)
		}
		if taken {
			return domain.User{}, ErrPhoneRegistered
		}
	}

	u.FullName = fullName
	u.Phone = phone
	u.DOB = dob
	u.Age = age
	u.Division = strings.TrimSpace(in.Division)
	u.District = strings.TrimSpace(in.District)
	u.PoliceStation = strings.TrimSpace(in.PoliceStation)
	u.Union = strings.TrimSpace(in.Union)
	u.Village = strings.TrimSpace(in.Village)
	u.PlaceDetails = strings.TrimSpace(in.PlaceDetails)
	u.Location = JoinLocation(u.Village, u.Union, u.PoliceStation, u.District, u.Division)
	if u.Location == "" {
		u.Location = strings.TrimSpace(in.Location)
	}
	u.UpdatedAt = now

	err = s.Store.Users().UpdateProfile(ctx, u)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("update profile: %w", err)
	}

	slogx.FromContext(ctx).Info("profile updated", slog.String("user_id", u.ID))
	return u, nil
}

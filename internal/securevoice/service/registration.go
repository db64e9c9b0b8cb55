package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/securevoice/securevoice/internal/securevoice/domain"
	"github.com/securevoice/securevoice/internal/securevoice/ephemeral"
	"github.com/securevoice/securevoice/internal/securevoice/notify"
	"github.com/securevoice/securevoice/internal/securevoice/store"
	"github.com/securevoice/securevoice/pkg/cryptox"
	"github.com/securevoice/securevoice/pkg/idx"
	"github.com/securevoice/securevoice/pkg/slogx"
)

// RegistrationService drives a citizen through the sign-up steps. Progress
// lives in the ephemeral stores until Signup writes the durable user.
type RegistrationService struct {
	Store    store.Store
	OTPs     ephemeral.Store[domain.OTPRecord]
	Sessions ephemeral.Store[domain.RegistrationSession]
	Notifier *notify.Dispatcher

	// EnforceStepOrder rejects a step until the previous one has completed.
	EnforceStepOrder bool

	// DevEcho returns issued codes to the caller. Never set in production.
	DevEcho bool

	Clock Clock
	Codes CodeGenerator
}

type SendOTPInput struct {
	Phone string
	Email string
}

type SendOTPResult struct {
	SessionID string
	ExpiresAt time.Time
	DevOTP    string // only with DevEcho
}

// SendOTP issues a registration code for a phone number or email address and
// opens a fresh registration session.
func (s *RegistrationService) SendOTP(ctx context.Context, in SendOTPInput) (SendOTPResult, error) {
	phone, email := strings.TrimSpace(in.Phone), strings.TrimSpace(in.Email)

	var identifier string
	switch {
	case phone != "":
		identifier = phone
		email = ""
		taken, err := s.Store.Users().PhoneTaken(ctx, phone)
		if err != nil {
			return SendOTPResult{}, fmt.Errorf("check phone: %w", err)
		}
		if taken {
			return SendOTPResult{}, ErrPhoneRegistered
		}
	case email != "":
		if !validEmail(email) {
			return SendOTPResult{}, ErrEmailFormat
		}
		identifier = email
		taken, err := s.Store.Users().EmailTaken(ctx, email)
		if err != nil {
			return SendOTPResult{}, fmt.Errorf("check email: %w", err)
		}
		if taken {
			return SendOTPResult{}, ErrEmailRegistered
		}
	default:
		return SendOTPResult{}, ErrIdentifierRequired
	}

	code, err := s.Codes.next()
	if err != nil {
		return SendOTPResult{}, fmt.Errorf("generate otp: %w", err)
	}

	now := s.Clock.now()
	rec := domain.OTPRecord{
		Identifier:  identifier,
		Code:        code,
		IssuedAt:    now,
		ExpiresAt:   now.Add(RegistrationOTPTTL),
		FirstSentAt: now,
	}
	prev, err := s.OTPs.Get(ctx, identifier)
	switch {
	case err == nil:
		if !prev.Consumed && !prev.Expired(now) {
			rec.ResendCount = prev.ResendCount + 1
			rec.FirstSentAt = prev.FirstSentAt
		}
	case !errors.Is(err, ephemeral.ErrNotFound):
		return SendOTPResult{}, fmt.Errorf("load otp: %w", err)
	}
	if err := s.OTPs.Put(ctx, identifier, rec, RegistrationOTPTTL); err != nil {
		return SendOTPResult{}, fmt.Errorf("store otp: %w", err)
	}

	sessionID, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return SendOTPResult{}, fmt.Errorf("generate session id: %w", err)
	}
	sess := domain.RegistrationSession{
		ID:        sessionID,
		Phone:     phone,
		Email:     email,
		Step:      domain.StepOTPSent,
		CreatedAt: now,
		ExpiresAt: now.Add(RegistrationSessionTTL),
	}
	if err := s.Sessions.Put(ctx, sessionID, sess, RegistrationSessionTTL); err != nil {
		return SendOTPResult{}, fmt.Errorf("store session: %w", err)
	}

	log := slogx.FromContext(ctx)
	if email != "" {
		if err := s.Notifier.SendRegistrationOTP(ctx, email, code, RegistrationOTPTTL); err != nil {
			log.Warn("registration otp email failed", slog.String("to", slogx.Mask(email)), slog.Any("error", err))
		}
	} else {
		// No SMS gateway is wired; the code only reaches the debug log.
		log.Debug("registration otp issued", slog.String("phone", slogx.Mask(phone)), slog.String("otp", code))
	}
	log.Info("registration started",
		slog.String("identifier", slogx.Mask(identifier)),
		slog.Int("resend_count", rec.ResendCount),
	)

	res := SendOTPResult{SessionID: sessionID, ExpiresAt: rec.ExpiresAt}
	if s.DevEcho {
		res.DevOTP = code
	}
	return res, nil
}

type VerifyOTPInput struct {
	Phone     string
	Email     string
	OTP       string
	SessionID string
}

// VerifyOTP checks a registration code and moves the session to step 2.
func (s *RegistrationService) VerifyOTP(ctx context.Context, in VerifyOTPInput) (domain.RegistrationSession, error) {
	identifier := strings.TrimSpace(in.Phone)
	if identifier == "" {
		identifier = strings.TrimSpace(in.Email)
	}
	code := strings.TrimSpace(in.OTP)
	switch {
	case identifier == "":
		return domain.RegistrationSession{}, ErrIdentifierRequired
	case code == "":
		return domain.RegistrationSession{}, ErrOTPRequired
	}

	now := s.Clock.now()
	sess, err := s.loadSession(ctx, in.SessionID, domain.StepOTPVerified, now)
	if err != nil {
		return domain.RegistrationSession{}, err
	}
	if sess.Identifier() != identifier {
		return domain.RegistrationSession{}, ErrSessionMismatch
	}

	rec, err := s.OTPs.Get(ctx, identifier)
	if errors.Is(err, ephemeral.ErrNotFound) {
		return domain.RegistrationSession{}, ErrOTPNotFound
	}
	if err != nil {
		return domain.RegistrationSession{}, fmt.Errorf("load otp: %w", err)
	}
	if rec.Consumed {
		return domain.RegistrationSession{}, ErrOTPUsed
	}
	if rec.Expired(now) {
		if err := s.OTPs.Delete(ctx, identifier); err != nil {
			slogx.FromContext(ctx).Warn("delete expired otp failed", slog.Any("error", err))
		}
		return domain.RegistrationSession{}, ErrOTPExpired
	}
	if subtle.ConstantTimeCompare([]byte(rec.Code), []byte(code)) != 1 {
		return domain.RegistrationSession{}, ErrOTPInvalid
	}

	rec.Consumed = true
	if err := s.OTPs.Put(ctx, identifier, rec, rec.ExpiresAt.Sub(now)); err != nil {
		return domain.RegistrationSession{}, fmt.Errorf("store otp: %w", err)
	}

	sess.OTPVerified = true
	sess.Advance(domain.StepOTPVerified)
	return sess, s.saveSession(ctx, sess, now)
}

type VerifyNIDInput struct {
	NID        string
	DOB        string
	NameEn     string
	NameBn     string
	FatherName string
	MotherName string
	SessionID  string
}

// VerifyNID checks the NID format and uniqueness and records the identity
// fields on the session.
func (s *RegistrationService) VerifyNID(ctx context.Context, in VerifyNIDInput) (domain.RegistrationSession, error) {
	if strings.TrimSpace(in.NID) == "" {
		return domain.RegistrationSession{}, ErrNIDRequired
	}
	nid := NormalizeNID(in.NID)
	if !validNIDLength(nid) {
		return domain.RegistrationSession{}, ErrNIDFormat
	}
	dob := strings.TrimSpace(in.DOB)
	if dob != "" {
		if _, err := ParseDOB(dob); err != nil {
			return domain.RegistrationSession{}, ErrDOBFormat
		}
	}

	now := s.Clock.now()
	sess, err := s.loadSession(ctx, in.SessionID, domain.StepNIDVerified, now)
	if err != nil {
		return domain.RegistrationSession{}, err
	}

	taken, err := s.Store.Users().NIDTaken(ctx, nid)
	if err != nil {
		return domain.RegistrationSession{}, fmt.Errorf("check nid: %w", err)
	}
	if taken {
		return domain.RegistrationSession{}, ErrNIDRegistered
	}

	sess.Data.NID = nid
	sess.Data.DOB = dob
	sess.Data.NameEn = strings.TrimSpace(in.NameEn)
	sess.Data.NameBn = strings.TrimSpace(in.NameBn)
	sess.Data.FatherName = strings.TrimSpace(in.FatherName)
	sess.Data.MotherName = strings.TrimSpace(in.MotherName)
	sess.NIDVerified = true
	sess.Advance(domain.StepNIDVerified)
	return sess, s.saveSession(ctx, sess, now)
}

// SaveFace stores the captured face image, a data URI, on the session.
func (s *RegistrationService) SaveFace(ctx context.Context, sessionID, faceImage string) (domain.RegistrationSession, error) {
	faceImage = strings.TrimSpace(faceImage)
	if faceImage == "" {
		return domain.RegistrationSession{}, ErrFaceRequired
	}
	if !validFaceImage(faceImage) {
		return domain.RegistrationSession{}, ErrFaceFormat
	}

	now := s.Clock.now()
	sess, err := s.loadSession(ctx, sessionID, domain.StepFaceSaved, now)
	if err != nil {
		return domain.RegistrationSession{}, err
	}

	sess.Data.FaceImage = faceImage
	sess.FaceVerified = true
	sess.Advance(domain.StepFaceSaved)
	return sess, s.saveSession(ctx, sess, now)
}

type AddressInput struct {
	Division      string
	District      string
	PoliceStation string
	Union         string
	Village       string
	PlaceDetails  string
	SessionID     string
}

// SaveAddress records the address on the session and derives the display
// location.
func (s *RegistrationService) SaveAddress(ctx context.Context, in AddressInput) (domain.RegistrationSession, error) {
	if isBlank(in.Division, in.District) {
		return domain.RegistrationSession{}, ErrAddressRequired
	}

	now := s.Clock.now()
	sess, err := s.loadSession(ctx, in.SessionID, domain.StepAddressSaved, now)
	if err != nil {
		return domain.RegistrationSession{}, err
	}

	d := &sess.Data
	d.Division = strings.TrimSpace(in.Division)
	d.District = strings.TrimSpace(in.District)
	d.PoliceStation = strings.TrimSpace(in.PoliceStation)
	d.Union = strings.TrimSpace(in.Union)
	d.Village = strings.TrimSpace(in.Village)
	d.PlaceDetails = strings.TrimSpace(in.PlaceDetails)
	d.Location = JoinLocation(d.Village, d.Union, d.PoliceStation, d.District, d.Division)
	sess.Advance(domain.StepAddressSaved)
	return sess, s.saveSession(ctx, sess, now)
}

// SignupInput carries the account fields plus the profile fields the client
// also posts directly. The direct fields are used only when there is no
// registration session.
type SignupInput struct {
	Username  string
	Email     string
	Password  string
	SessionID string

	Phone string
	domain.RegistrationData
}

// Signup validates the account fields and writes the durable user from the
// registration session. The caller establishes the login session.
func (s *RegistrationService) Signup(ctx context.Context, in SignupInput) (domain.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	switch {
	case !validUsername(username):
		return domain.User{}, ErrUsernameFormat
	case !validEmail(email):
		return domain.User{}, ErrEmailFormat
	case len(in.Password) < MinPasswordLength:
		return domain.User{}, ErrPasswordTooShort
	}

	now := s.Clock.now()
	var (
		sess    domain.RegistrationSession
		hasSess bool
	)
	if in.SessionID != "" || s.EnforceStepOrder {
		loaded, err := s.loadSession(ctx, in.SessionID, domain.StepAddressSaved+1, now)
		switch {
		case err == nil:
			sess, hasSess = loaded, true
		case s.EnforceStepOrder || domain.KindOf(err) == "":
			return domain.User{}, err
		}
	}

	data, phone := in.RegistrationData, strings.TrimSpace(in.Phone)
	if hasSess {
		data, phone = sess.Data, sess.Phone
	} else {
		data.NID = NormalizeNID(data.NID)
		if data.NID != "" && !validNIDLength(data.NID) {
			return domain.User{}, ErrNIDFormat
		}
		if data.FaceImage != "" && !validFaceImage(data.FaceImage) {
			return domain.User{}, ErrFaceFormat
		}
		data.Location = JoinLocation(data.Village, data.Union, data.PoliceStation, data.District, data.Division)
	}

	users := s.Store.Users()
	if taken, err := users.UsernameTaken(ctx, username); err != nil {
		return domain.User{}, fmt.Errorf("check username: %w", err)
	} else if taken {
		return domain.User{}, ErrUsernameTaken
	}
	if taken, err := users.EmailTaken(ctx, email); err != nil {
		return domain.User{}, fmt.Errorf("check email: %w", err)
	} else if taken {
		return domain.User{}, ErrEmailTaken
	}
	if data.NID != "" {
		if taken, err := users.NIDTaken(ctx, data.NID); err != nil {
			return domain.User{}, fmt.Errorf("check nid: %w", err)
		} else if taken {
			return domain.User{}, ErrNIDRegistered
		}
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	u := domain.User{
		ID:             idx.NewAt(now).String(),
		Username:       username,
		Email:          email,
		Phone:          phone,
		NID:            data.NID,
		PasswordHash:   hash,
		FullName:       data.NameEn,
		NameBn:         data.NameBn,
		FatherName:     data.FatherName,
		MotherName:     data.MotherName,
		DOB:            data.DOB,
		Division:       data.Division,
		District:       data.District,
		PoliceStation:  data.PoliceStation,
		Union:          data.Union,
		Village:        data.Village,
		PlaceDetails:   data.PlaceDetails,
		Location:       data.Location,
		FaceImage:      data.FaceImage,
		IsVerified:     true,
		IsNIDVerified:  data.NID != "",
		IsFaceVerified: data.FaceImage != "",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if dob, err := ParseDOB(data.DOB); err == nil {
		age := AgeAt(dob, now)
		u.Age = &age
	}

	if err := users.CreateUser(ctx, u); err != nil {
		return domain.User{}, mapUserConflict(err)
	}

	log := slogx.FromContext(ctx)
	s.cleanup(ctx, sess.ID, sess.Phone, sess.Email, phone, email)
	if err := s.Notifier.SendWelcome(ctx, u.Email, u.FullName); err != nil {
		log.Warn("welcome email failed", slog.String("to", slogx.Mask(u.Email)), slog.Any("error", err))
	}
	log.Info("user registered", slog.String("user_id", u.ID), slog.Bool("from_session", hasSess))
	return u, nil
}

// RegistrationStatus reports the progress of a registration session.
func (s *RegistrationService) RegistrationStatus(ctx context.Context, sessionID string) (domain.RegistrationSession, error) {
	return s.loadSession(ctx, sessionID, 0, s.Clock.now())
}

// loadSession returns the live session for id. With EnforceStepOrder the
// session must have reached the step before target.
func (s *RegistrationService) loadSession(ctx context.Context, id string, target int, now time.Time) (domain.RegistrationSession, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.RegistrationSession{}, ErrSessionRequired
	}

	sess, err := s.Sessions.Get(ctx, id)
	if errors.Is(err, ephemeral.ErrNotFound) {
		return domain.RegistrationSession{}, ErrSessionNotFound
	}
	if err != nil {
		return domain.RegistrationSession{}, fmt.Errorf("load session: %w", err)
	}
	if sess.Expired(now) {
		if err := s.Sessions.Delete(ctx, id); err != nil {
			slogx.FromContext(ctx).Warn("delete expired session failed", slog.Any("error", err))
		}
		return domain.RegistrationSession{}, ErrSessionExpired
	}
	if s.EnforceStepOrder && target > 0 && sess.Step < target-1 {
		return domain.RegistrationSession{}, ErrStepOrder
	}
	return sess, nil
}

// saveSession writes sess back for the rest of its fixed lifetime.
func (s *RegistrationService) saveSession(ctx context.Context, sess domain.RegistrationSession, now time.Time) error {
	if err := s.Sessions.Put(ctx, sess.ID, sess, sess.ExpiresAt.Sub(now)); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// cleanup drops the finished session and the OTP records of every
// identifier used during sign-up.
func (s *RegistrationService) cleanup(ctx context.Context, sessionID string, identifiers ...string) {
	log := slogx.FromContext(ctx)
	if sessionID != "" {
		if err := s.Sessions.Delete(ctx, sessionID); err != nil {
			log.Warn("delete registration session failed", slog.Any("error", err))
		}
	}
	for _, id := range identifiers {
		if id == "" {
			continue
		}
		if err := s.OTPs.Delete(ctx, id); err != nil {
			log.Warn("delete registration otp failed", slog.Any("error", err))
		}
	}
}

// mapUserConflict turns a unique violation that slipped past the pre-checks
// into the matching user-facing conflict.
func mapUserConflict(err error) error {
	var conflict *store.ConflictError
	if !errors.As(err, &conflict) {
		return fmt.Errorf("create user: %w", err)
	}
	switch conflict.Field {
	case "username":
		return ErrUsernameTaken
	case "email":
		return ErrEmailTaken
	case "nid":
		return ErrNIDRegistered
	default:
		return fmt.Errorf("create user: %w", err)
	}
}

package domain

import "time"

// Registration steps in the order the browser client walks them.
const (
	StepOTPSent      = 1
	StepOTPVerified  = 2
	StepNIDVerified  = 3
	StepFaceSaved    = 4
	StepAddressSaved = 5
)

// OTPRecord is one issued registration code, keyed by phone or email.
type OTPRecord struct {
	Identifier  string    `json:"identifier"`
	Code        string    `json:"code"`
	IssuedAt    time.Time `json:"issuedAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Consumed    bool      `json:"consumed"`
	ResendCount int       `json:"resendCount"`
	FirstSentAt time.Time `json:"firstSentAt"`
}

// Expired reports whether the record is past its deadline at now.
func (o OTPRecord) Expired(now time.Time) bool { return !now.Before(o.ExpiresAt) }

// RegistrationData is the partial profile collected across steps.
type RegistrationData struct {
	NID           string `json:"nid,omitempty"`
	DOB           string `json:"dob,omitempty"`
	NameEn        string `json:"nameEn,omitempty"`
	NameBn        string `json:"nameBn,omitempty"`
	FatherName    string `json:"fatherName,omitempty"`
	MotherName    string `json:"motherName,omitempty"`
	FaceImage     string `json:"faceImage,omitempty"`
	Division      string `json:"division,omitempty"`
	District      string `json:"district,omitempty"`
	PoliceStation string `json:"policeStation,omitempty"`
	Union         string `json:"union,omitempty"`
	Village       string `json:"village,omitempty"`
	PlaceDetails  string `json:"placeDetails,omitempty"`
	Location      string `json:"location,omitempty"`
}

// RegistrationSession tracks one sign-up in progress.
type RegistrationSession struct {
	ID           string           `json:"sessionId"`
	Phone        string           `json:"phone,omitempty"`
	Email        string           `json:"email,omitempty"`
	Step         int              `json:"step"`
	OTPVerified  bool             `json:"otpVerified"`
	NIDVerified  bool             `json:"nidVerified"`
	FaceVerified bool             `json:"faceVerified"`
	Data         RegistrationData `json:"data"`
	CreatedAt    time.Time        `json:"createdAt"`
	ExpiresAt    time.Time        `json:"expiresAt"`
}

// Expired reports whether the session is past its deadline at now.
func (s RegistrationSession) Expired(now time.Time) bool { return !now.Before(s.ExpiresAt) }

// Identifier returns the phone or email the session was opened for.
func (s RegistrationSession) Identifier() string {
	if s.Phone != "" {
		return s.Phone
	}
	return s.Email
}

// Advance moves the session to step unless it is already further along.
func (s *RegistrationSession) Advance(step int) {
	if step > s.Step {
		s.Step = step
	}
}

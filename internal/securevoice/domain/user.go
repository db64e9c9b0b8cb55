package domain

import "time"

// User is a registered citizen.
type User struct {
	ID             string
	Username       string
	Email          string
	Phone          string
	NID            string // empty when not provided
	PasswordHash   string
	FullName       string
	NameBn         string
	FatherName     string
	MotherName     string
	DOB            string // YYYY-MM-DD
	Age            *int   // derived from DOB at write time
	Division       string
	District       string
	PoliceStation  string
	Union          string
	Village        string
	PlaceDetails   string
	Location       string
	FaceImage      string
	IsVerified     bool
	IsNIDVerified  bool
	IsFaceVerified bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PublicUser is the subset of User returned to clients.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName,omitempty"`
	Age      *int   `json:"age,omitempty"`
	Location string `json:"location,omitempty"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		Age:      u.Age,
		Location: u.Location,
	}
}

// Profile is what a citizen sees and edits about their own account.
type Profile struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	FullName       string    `json:"fullName,omitempty"`
	NameBn         string    `json:"nameBn,omitempty"`
	FatherName     string    `json:"fatherName,omitempty"`
	MotherName     string    `json:"motherName,omitempty"`
	DOB            string    `json:"dob,omitempty"`
	Age            *int      `json:"age,omitempty"`
	Division       string    `json:"division,omitempty"`
	District       string    `json:"district,omitempty"`
	PoliceStation  string    `json:"policeStation,omitempty"`
	Union          string    `json:"union,omitempty"`
	Village        string    `json:"village,omitempty"`
	PlaceDetails   string    `json:"placeDetails,omitempty"`
	Location       string    `json:"location,omitempty"`
	IsVerified     bool      `json:"isVerified"`
	IsNIDVerified  bool      `json:"isNidVerified"`
	IsFaceVerified bool      `json:"isFaceVerified"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (u User) Profile() Profile {
	return Profile{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Phone:          u.Phone,
		FullName:       u.FullName,
		NameBn:         u.NameBn,
		FatherName:     u.FatherName,
		MotherName:     u.MotherName,
		DOB:            u.DOB,
		Age:            u.Age,
		Division:       u.Division,
		District:       u.District,
		PoliceStation:  u.PoliceStation,
		Union:          u.Union,
		Village:        u.Village,
		PlaceDetails:   u.PlaceDetails,
		Location:       u.Location,
		IsVerified:     u.IsVerified,
		IsNIDVerified:  u.IsNIDVerified,
		IsFaceVerified: u.IsFaceVerified,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

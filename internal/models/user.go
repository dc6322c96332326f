package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Role string

const (
	RoleJunior Role = "JUNIOR"
	RoleSenior Role = "SENIOR"
	RoleAlumni Role = "ALUMNI"
	RoleAdmin  Role = "ADMIN"
)

// MentorRoles are the roles a junior may send a request to.
var MentorRoles = []Role{RoleSenior, RoleAlumni}

func (r Role) IsValid() bool {
	switch r {
	case RoleJunior, RoleSenior, RoleAlumni, RoleAdmin:
		return true
	}
	return false
}

func (r Role) IsMentor() bool {
	return r == RoleSenior || r == RoleAlumni
}

type ProfileType string

const (
	ProfileStudent ProfileType = "student"
	ProfileAlumni  ProfileType = "alumni"
)

/** --------------------ENTITIES-------------------- */
// User is a junior, a mentor or an admin.
type User struct {
	gorm.Model
	Name         string `gorm:"type:varchar(120);index"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         Role   `gorm:"type:varchar(20);not null;index"`
	Bio          string `gorm:"type:text"`
	Tags         datatypes.JSONSlice[string]
	AvatarURL    string

	ProfileType        ProfileType `gorm:"type:varchar(20)"`
	EnrollmentYear     *int
	GraduationYear     *int
	CurrentYearOfStudy *int
	Degree             string
	Branch             string
	Achievements       string `gorm:"type:text"`

	CurrentCompany string
	JobTitle       string
	LinkedIn       string
	Location       string

	Visibility ProfileVisibility `gorm:"embedded;embeddedPrefix:visibility_"`
}

// ProfileVisibility controls which parts of a profile other users see.
type ProfileVisibility struct {
	ShowEmail           bool `json:"showEmail"`
	ShowEnrollmentYears bool `json:"showEnrollmentYears"`
	ShowCareerInfo      bool `json:"showCareerInfo"`
}

// DefaultVisibility hides the email and shows everything else.
func DefaultVisibility() ProfileVisibility {
	return ProfileVisibility{ShowEmail: false, ShowEnrollmentYears: true, ShowCareerInfo: true}
}

/** -------------------- DTOs -------------------- */
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the self view of an account: everything but the hash.
type UserResponse struct {
	ID                 uint              `json:"_id"`
	Name               string            `json:"name"`
	Email              string            `json:"email"`
	Role               Role              `json:"role"`
	Bio                string            `json:"bio"`
	Tags               []string          `json:"tags"`
	AvatarURL          *string           `json:"avatarUrl"`
	ProfileType        ProfileType       `json:"profileType,omitempty"`
	EnrollmentYear     *int              `json:"enrollmentYear"`
	GraduationYear     *int              `json:"graduationYear"`
	CurrentYearOfStudy *int              `json:"currentYearOfStudy"`
	Degree             string            `json:"degree"`
	Branch             string            `json:"branch"`
	Achievements       string            `json:"achievements"`
	CurrentCompany     string            `json:"currentCompany"`
	JobTitle           string            `json:"jobTitle"`
	LinkedIn           string            `json:"linkedin"`
	Location           string            `json:"location"`
	ProfileVisibility  ProfileVisibility `json:"profileVisibility"`
	CreatedAt          time.Time         `json:"createdAt"`
}

// AuthResponse is returned by signup and login.
// swagger:model
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UpdateProfileRequest carries a partial profile update. Nil fields are left
// untouched.
type UpdateProfileRequest struct {
	Name               *string     `json:"name"`
	Bio                *string     `json:"bio"`
	Tags               *TagList    `json:"tags" swaggertype:"array,string"`
	ProfileType        *string     `json:"profileType"`
	EnrollmentYear     *int        `json:"enrollmentYear"`
	GraduationYear     *int        `json:"graduationYear"`
	CurrentYearOfStudy *int        `json:"currentYearOfStudy"`
	Degree             *string     `json:"degree"`
	Branch             *string     `json:"branch"`
	Achievements       *string     `json:"achievements"`
	CurrentCompany     *string     `json:"currentCompany"`
	JobTitle           *string     `json:"jobTitle"`
	LinkedIn           *string     `json:"linkedin"`
	Location           *string     `json:"location"`
	ProfileVisibility  *Visibility `json:"profileVisibility"`
}

// Visibility is a partial update of ProfileVisibility.
type Visibility struct {
	ShowEmail           *bool `json:"showEmail"`
	ShowEnrollmentYears *bool `json:"showEnrollmentYears"`
	ShowCareerInfo      *bool `json:"showCareerInfo"`
}

type AvatarResponse struct {
	User      UserResponse `json:"user"`
	AvatarURL *string      `json:"avatarUrl"`
}

// UserSummary is the name and email pair attached to requests.
type UserSummary struct {
	ID    uint   `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ToResponse builds the self view of u.
func (u *User) ToResponse() UserResponse {
	tags := []string(u.Tags)
	if tags == nil {
		tags = []string{}
	}
	return UserResponse{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Role:               u.Role,
		Bio:                u.Bio,
		Tags:               tags,
		AvatarURL:          NormalizeAvatarPath(u.AvatarURL),
		ProfileType:        u.ProfileType,
		EnrollmentYear:     u.EnrollmentYear,
		GraduationYear:     u.GraduationYear,
		CurrentYearOfStudy: u.CurrentYearOfStudy,
		Degree:             u.Degree,
		Branch:             u.Branch,
		Achievements:       u.Achievements,
		CurrentCompany:     u.CurrentCompany,
		JobTitle:           u.JobTitle,
		LinkedIn:           u.LinkedIn,
		Location:           u.Location,
		ProfileVisibility:  u.Visibility,
		CreatedAt:          u.CreatedAt,
	}
}

func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

package models

import (
	"strconv"
	"strings"
	"time"
)

// PublicProfile is what other users see of an account. Hidden fields are
// omitted from the JSON entirely.
type PublicProfile struct {
	ID                 uint              `json:"_id"`
	Name               string            `json:"name"`
	Email              string            `json:"email,omitempty"`
	Role               Role              `json:"role"`
	Bio                string            `json:"bio"`
	Tags               []string          `json:"tags"`
	AvatarURL          *string           `json:"avatarUrl"`
	ProfileType        ProfileType       `json:"profileType,omitempty"`
	EnrollmentYear     *int              `json:"enrollmentYear,omitempty"`
	GraduationYear     *int              `json:"graduationYear,omitempty"`
	CurrentYearOfStudy *int              `json:"currentYearOfStudy,omitempty"`
	Degree             string            `json:"degree,omitempty"`
	Branch             string            `json:"branch,omitempty"`
	Achievements       string            `json:"achievements,omitempty"`
	CurrentCompany     string            `json:"currentCompany,omitempty"`
	JobTitle           string            `json:"jobTitle,omitempty"`
	LinkedIn           string            `json:"linkedin,omitempty"`
	Location           string            `json:"location,omitempty"`
	ProfileVisibility  ProfileVisibility `json:"profileVisibility"`
	CreatedAt          time.Time         `json:"createdAt"`
}

// NewPublicProfile applies u's visibility settings. When the current year of
// study is unset it is derived from the graduation year.
func NewPublicProfile(u *User, now time.Time) PublicProfile {
	tags := []string(u.Tags)
	if tags == nil {
		tags = []string{}
	}
	p := PublicProfile{
		ID:                u.ID,
		Name:              u.Name,
		Role:              u.Role,
		Bio:               u.Bio,
		Tags:              tags,
		AvatarURL:         NormalizeAvatarPath(u.AvatarURL),
		ProfileType:       u.ProfileType,
		Degree:            u.Degree,
		Branch:            u.Branch,
		Achievements:      u.Achievements,
		ProfileVisibility: u.Visibility,
		CreatedAt:         u.CreatedAt,
	}

	if u.Visibility.ShowEmail {
		p.Email = u.Email
	}

	if u.Visibility.ShowEnrollmentYears {
		p.EnrollmentYear = u.EnrollmentYear
		p.GraduationYear = u.GraduationYear
		p.CurrentYearOfStudy = u.CurrentYearOfStudy
		if p.CurrentYearOfStudy == nil {
			p.CurrentYearOfStudy = YearOfStudy(u.GraduationYear, now)
		}
	}

	if u.Visibility.ShowCareerInfo {
		p.CurrentCompany = u.CurrentCompany
		p.JobTitle = u.JobTitle
		p.LinkedIn = u.LinkedIn
		p.Location = u.Location
	}

	return p
}

// WithAbsoluteAvatar returns p with a relative avatar path resolved against
// baseURL.
func (p PublicProfile) WithAbsoluteAvatar(baseURL string) PublicProfile {
	p.AvatarURL = AbsoluteAvatar(p.AvatarURL, baseURL)
	return p
}

// NormalizeAvatarPath returns nil for an empty path and guarantees a leading
// slash on relative ones.
func NormalizeAvatarPath(path string) *string {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if !isAbsoluteURL(path) && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return &path
}

// AbsoluteAvatar prefixes relative avatar paths with baseURL. Absolute URLs
// are returned unchanged.
func AbsoluteAvatar(path *string, baseURL string) *string {
	if path == nil || isAbsoluteURL(*path) || baseURL == "" {
		return path
	}
	abs := strings.TrimRight(baseURL, "/") + *path
	return &abs
}

// DisplayName picks the best human label for u.
func DisplayName(u *User) string {
	if u == nil {
		return "User"
	}
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	if at := strings.Index(u.Email, "@"); at > 0 {
		return u.Email[:at]
	}
	if u.ID != 0 {
		id := strconv.FormatUint(uint64(u.ID), 10)
		if len(id) > 6 {
			id = id[:6]
		}
		return id
	}
	return "User"
}

// YearOfStudy assumes a four year programme ending in graduationYear and
// returns the 1-based year now falls in, or nil outside years 1-4. The
// graduation year itself counts as graduated.
func YearOfStudy(graduationYear *int, now time.Time) *int {
	if graduationYear == nil {
		return nil
	}
	enrollment := *graduationYear - 4
	year := now.Year()
	if year < enrollment || year > *graduationYear {
		return nil
	}
	current := year - enrollment + 1
	if current > 4 {
		return nil
	}
	return &current
}

func isAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

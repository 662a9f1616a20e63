package auth

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	appErrors "github.com/fatali-fataliyev/lesson_board/customErrors"
)

const (
	MAX_LENGTH_NAME     = 255
	MAX_LENGTH_EMAIL    = 255
	MIN_PASSWORD_LENGTH = 6
	MAX_PASSWORD_LENGTH = 72
	MAX_AGE             = 120
)

var (
	Countries = []string{"USA", "Canada", "UK", "Australia", "Other"}
	Interests = []string{"Technology", "Sports", "Music", "Travel", "Cooking"}

	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9](\.?[a-zA-Z0-9_%+-])*@[a-zA-Z0-9-]+(\.[a-zA-Z0-9-]+)*\.[a-zA-Z]{2,}$`)
)

// Registration is the submitted sign-up form.
type Registration struct {
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	ConfirmPassword string   `json:"confirm_password"`
	Country         string   `json:"country"`
	Interests       []string `json:"interests"`
	AgreeTerms      bool     `json:"agree_terms"`
}

// ProfileRequest is the quick "name and age" form.
type ProfileRequest struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// Profile is what a session remembers about its user. It is filled either by
// the quick form or by a registration, never both.
type Profile struct {
	Name           string    `json:"name,omitempty"`
	Age            int       `json:"age,omitempty"`
	FirstName      string    `json:"first_name,omitempty"`
	LastName       string    `json:"last_name,omitempty"`
	Email          string    `json:"email,omitempty"`
	Country        string    `json:"country,omitempty"`
	Interests      []string  `json:"interests,omitempty"`
	PasswordHashed string    `json:"-"`
	SavedAt        time.Time `json:"saved_at"`
}

func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.Interests = slices.Clone(p.Interests)
	return &c
}

// ValidateFields checks the password pair, then the terms, then the remaining
// fields. The first failure is returned.
func (r Registration) ValidateFields() error {
	if r.Password != r.ConfirmPassword {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Passwords do not match!",
		}
	}
	if len(r.Password) < MIN_PASSWORD_LENGTH {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Password must be at least %d characters long!", MIN_PASSWORD_LENGTH),
		}
	}
	if !r.AgreeTerms {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "You must agree to the terms and conditions!",
		}
	}
	if len(r.Password) > MAX_PASSWORD_LENGTH {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Password so long, maximum length is %d", MAX_PASSWORD_LENGTH),
		}
	}
	if strings.TrimSpace(r.FirstName) == "" || strings.TrimSpace(r.LastName) == "" {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "First and last name cannot be empty!",
		}
	}
	if len(r.FirstName) > MAX_LENGTH_NAME || len(r.LastName) > MAX_LENGTH_NAME {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Name so long, maximum length is %d", MAX_LENGTH_NAME),
		}
	}
	if r.Email == "" {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Email cannot be empty!",
		}
	}
	if len(r.Email) > MAX_LENGTH_EMAIL {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Email so long, maximum length is %d", MAX_LENGTH_EMAIL),
		}
	}
	if !emailRegex.MatchString(r.Email) {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Invalid email format, example valid email: john.doe@gmail.com",
		}
	}
	if !slices.Contains(Countries, r.Country) {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Unknown country: %q, allowed: %s", r.Country, strings.Join(Countries, ", ")),
		}
	}
	for _, interest := range r.Interests {
		if !slices.Contains(Interests, interest) {
			return appErrors.ErrorResponse{
				Code:    appErrors.ErrInvalidInput,
				Message: fmt.Sprintf("Unknown interest: %q", interest),
			}
		}
	}
	return nil
}

func (p ProfileRequest) ValidateFields() error {
	if strings.TrimSpace(p.Name) == "" {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Name cannot be empty!",
		}
	}
	if p.Age < 0 || p.Age > MAX_AGE {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Age must be between 0 and %d", MAX_AGE),
		}
	}
	return nil
}

package auth

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash plain password to hashed password: %w", err)
	}
	return string(hashedPassword), nil
}

func ComparePasswords(hashedPwd string, plainPwd string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPwd), []byte(plainPwd))
	return err == nil
}

// Register validates the form and turns it into a profile. Only the bcrypt
// hash of the password is kept.
func Register(r Registration, now time.Time) (Profile, error) {
	if err := r.ValidateFields(); err != nil {
		return Profile{}, err
	}
	hashed, err := HashPassword(r.Password)
	if err != nil {
		return Profile{}, err
	}
	return Profile{
		FirstName:      strings.TrimSpace(r.FirstName),
		LastName:       strings.TrimSpace(r.LastName),
		Email:          r.Email,
		Country:        r.Country,
		Interests:      append([]string{}, r.Interests...),
		PasswordHashed: hashed,
		SavedAt:        now,
	}, nil
}

func SaveProfile(p ProfileRequest, now time.Time) (Profile, error) {
	if err := p.ValidateFields(); err != nil {
		return Profile{}, err
	}
	return Profile{Name: strings.TrimSpace(p.Name), Age: p.Age, SavedAt: now}, nil
}

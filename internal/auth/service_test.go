package auth

import (
	"testing"
	"time"

	appErrors "github.com/fatali-fataliyev/lesson_board/customErrors"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	plain := "messi10"

	new_hash, err := HashPassword(plain)
	require.NoError(t, err)

	require.True(t, ComparePasswords(new_hash, plain))
	require.False(t, ComparePasswords(new_hash, "ronaldo7"))
}

func validRegistration() Registration {
	return Registration{
		FirstName:       "John",
		LastName:        "Doe",
		Email:           "john.doe@gmail.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Country:         "Canada",
		Interests:       []string{"Music", "Travel"},
		AgreeTerms:      true,
	}
}

func TestRegistrationValidateFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Registration)
		wantMsg string
	}{
		{name: "Success", mutate: func(r *Registration) {}},
		{name: "Fail - mismatch", mutate: func(r *Registration) { r.ConfirmPassword = "other12" }, wantMsg: "Passwords do not match!"},
		{name: "Fail - short", mutate: func(r *Registration) { r.Password, r.ConfirmPassword = "abc", "abc" }, wantMsg: "Password must be at least 6 characters long!"},
		{name: "Fail - terms", mutate: func(r *Registration) { r.AgreeTerms = false }, wantMsg: "You must agree to the terms and conditions!"},
		{
			name: "Fail - mismatch wins over short and terms",
			mutate: func(r *Registration) {
				r.Password, r.ConfirmPassword, r.AgreeTerms = "a", "b", false
			},
			wantMsg: "Passwords do not match!",
		},
		{
			name: "Fail - short wins over terms",
			mutate: func(r *Registration) {
				r.Password, r.ConfirmPassword, r.AgreeTerms = "a", "a", false
			},
			wantMsg: "Password must be at least 6 characters long!",
		},
		{name: "Fail - bad email", mutate: func(r *Registration) { r.Email = "john@" }, wantMsg: "Invalid email format, example valid email: john.doe@gmail.com"},
		{name: "Fail - empty name", mutate: func(r *Registration) { r.FirstName = " " }, wantMsg: "First and last name cannot be empty!"},
		{name: "Fail - country", mutate: func(r *Registration) { r.Country = "Mars" }, wantMsg: `Unknown country: "Mars", allowed: USA, Canada, UK, Australia, Other`},
		{name: "Fail - interest", mutate: func(r *Registration) { r.Interests = []string{"Knitting"} }, wantMsg: `Unknown interest: "Knitting"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRegistration()
			tt.mutate(&r)
			err := r.ValidateFields()
			if tt.wantMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Equal(t, appErrors.ErrorResponse{Code: appErrors.ErrInvalidInput, Message: tt.wantMsg}, err)
		})
	}
}

func TestRegister(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	p, err := Register(validRegistration(), now)
	require.NoError(t, err)
	require.Equal(t, "John", p.FirstName)
	require.Equal(t, now, p.SavedAt)
	require.NotEqual(t, "secret1", p.PasswordHashed)
	require.True(t, ComparePasswords(p.PasswordHashed, "secret1"))

	bad := validRegistration()
	bad.AgreeTerms = false
	p, err = Register(bad, now)
	require.Error(t, err)
	require.Equal(t, Profile{}, p)
}

func TestSaveProfile(t *testing.T) {
	now := time.Now()
	p, err := SaveProfile(ProfileRequest{Name: " Ann ", Age: 30}, now)
	require.NoError(t, err)
	require.Equal(t, Profile{Name: "Ann", Age: 30, SavedAt: now}, p)

	_, err = SaveProfile(ProfileRequest{Name: "Ann", Age: 121}, now)
	require.Error(t, err)
	_, err = SaveProfile(ProfileRequest{Name: "", Age: 1}, now)
	require.Error(t, err)

	orig := &Profile{Interests: []string{"Music"}}
	clone := orig.Clone()
	clone.Interests[0] = "Sports"
	require.Equal(t, []string{"Music"}, orig.Interests)
	require.Nil(t, (*Profile)(nil).Clone())
}

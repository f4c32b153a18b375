package account

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/2beens/challenge45/internal/plan"
	"github.com/2beens/challenge45/internal/profiles"
)

const (
	minPasswordLength = 8
	minAge            = 13
	maxAge            = 80
	minHeightCm       = 100
)

var ErrInvalidSignup = errors.New("invalid signup")

type SignupRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Routine  string   `json:"routine"`
	Timezone string   `json:"timezone"`
	Age      *int     `json:"age"`
	Weight   *float64 `json:"weight"`
	HeightCm *float64 `json:"heightCm"`
}

// validate normalizes the request and returns the parsed routine.
func (req *SignupRequest) validate() (plan.Routine, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	req.Timezone = strings.TrimSpace(req.Timezone)

	if _, err := mail.ParseAddress(req.Email); err != nil {
		return "", fmt.Errorf("%w: email", ErrInvalidSignup)
	}
	if len(req.Password) < minPasswordLength {
		return "", fmt.Errorf("%w: password must have at least %d characters", ErrInvalidSignup, minPasswordLength)
	}
	routine, err := plan.ParseRoutine(req.Routine)
	if err != nil {
		return "", fmt.Errorf("%w: routine", ErrInvalidSignup)
	}
	if req.Age != nil && (*req.Age < minAge || *req.Age > maxAge) {
		return "", fmt.Errorf("%w: age must be between %d and %d", ErrInvalidSignup, minAge, maxAge)
	}
	if req.Weight != nil && *req.Weight <= profiles.MinWeightKg {
		return "", fmt.Errorf("%w: weight must be above %.0f kg", ErrInvalidSignup, profiles.MinWeightKg)
	}
	if req.HeightCm != nil && *req.HeightCm <= minHeightCm {
		return "", fmt.Errorf("%w: height must be above %d cm", ErrInvalidSignup, minHeightCm)
	}
	if req.Timezone != "" {
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			return "", fmt.Errorf("%w: timezone", ErrInvalidSignup)
		}
	}

	return routine, nil
}

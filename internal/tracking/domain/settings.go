package domain

import "errors"

var (
	ErrInvalidTargetHours     = errors.New("target hours must be between 1 and 24")
	ErrInvalidStreakThreshold = errors.New("streak threshold must be between 0 and 100")
)

// Settings are the user's preferences.
type Settings struct {
	TargetHours     int    `json:"targetHours"`
	StreakThreshold int    `json:"streakThreshold"`
	UserName        string `json:"userName"`
	AvatarStyle     string `json:"avatarStyle"`
}

// DefaultSettings returns the settings used before the user changes them.
func DefaultSettings() Settings {
	return Settings{
		TargetHours:     8,
		StreakThreshold: 80,
	}
}

// Validate checks numeric ranges.
func (s Settings) Validate() error {
	if s.TargetHours < 1 || s.TargetHours > 24 {
		return ErrInvalidTargetHours
	}
	if s.StreakThreshold < 0 || s.StreakThreshold > 100 {
		return ErrInvalidStreakThreshold
	}
	return nil
}

// RequiredHours is the deep-work hours a day needs to extend the streak.
func (s Settings) RequiredHours() float64 {
	return float64(s.TargetHours) * float64(s.StreakThreshold) / 100
}

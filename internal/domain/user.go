package domain

import "time"

type Preferences struct {
	Language Language `json:"language"`
	Theme    Theme    `json:"theme"`
}

// User is both an account and, once logged in, the principal of every check.
// Users are deactivated, never deleted.
type User struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	Password    string      `json:"password"`
	Name        string      `json:"name"`
	Role        Role        `json:"role"`
	Avatar      string      `json:"avatar,omitempty"`
	Preferences Preferences `json:"preferences"`
	IsActive    bool        `json:"isActive"`
	CreatedAt   time.Time   `json:"createdAt"`
}

func DefaultPreferences() Preferences {
	return Preferences{Language: LanguageEnglish, Theme: ThemeLight}
}

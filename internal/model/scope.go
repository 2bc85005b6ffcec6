package model

import (
	"fmt"
	"strings"
)

// Scope identifies who triggered the current interaction.
type Scope struct {
	UserID    int64
	Username  string
	FirstName string
	LastName  string
}

// DisplayName returns "username (First Last)" with missing parts left out.
func (s Scope) DisplayName() string {
	full := strings.TrimSpace(s.FirstName + " " + s.LastName)
	switch {
	case s.Username != "" && full != "":
		return fmt.Sprintf("%s (%s)", s.Username, full)
	case s.Username != "":
		return s.Username
	case full != "":
		return full
	default:
		return fmt.Sprintf("user %d", s.UserID)
	}
}

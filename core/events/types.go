// Package events provides the presence event model consumed by the
// session reconstructor.
package events

import (
	"fmt"
	"strings"
)

// Status is the presence state carried by a single ping.
type Status string

const (
	// StatusInOffice indicates the person was seen present.
	StatusInOffice Status = "IN_OFFICE"
	// StatusOutOfOffice indicates the person explicitly left.
	StatusOutOfOffice Status = "OUT_OF_OFFICE"
	// StatusUnknown is only ever reported, never stored. It is used when
	// no event exists in the lookback window.
	StatusUnknown Status = "UNKNOWN"
)

// statusShortNames maps each storable Status to the short name accepted on
// the command line.
var statusShortNames = map[Status]string{
	StatusInOffice:    "in",
	StatusOutOfOffice: "out",
}

// String returns the string representation of a Status.
func (s Status) String() string {
	return string(s)
}

// IsValid returns true if the Status can be stored as an event.
func (s Status) IsValid() bool {
	_, ok := statusShortNames[s]
	return ok
}

// ShortName returns the short display name ("in" / "out").
func (s Status) ShortName() string {
	if n, ok := statusShortNames[s]; ok {
		return n
	}
	return "unknown"
}

// ParseStatus parses a status from either its full name (IN_OFFICE) or its
// short name (in), case-insensitively.
func ParseStatus(s string) (Status, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	for st, short := range statusShortNames {
		if norm == string(st) || norm == strings.ToUpper(short) {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid presence status: %q", s)
}

// Role is the account role of a tracked user.
type Role string

const (
	// RoleAdmin can view reports for everyone.
	RoleAdmin Role = "ADMIN"
	// RoleEmployee is a tracked person.
	RoleEmployee Role = "EMPLOYEE"
)

// String returns the string representation of a Role.
func (r Role) String() string {
	return string(r)
}

// IsValid returns true if the Role is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEmployee:
		return true
	default:
		return false
	}
}

// ParseRole parses a role case-insensitively.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", fmt.Errorf("invalid role: %q", s)
	}
	return r, nil
}

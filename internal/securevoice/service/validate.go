package service

import (
	"regexp"
	"strings"
	"time"
)

const (
	MinPasswordLength = 8
	dobLayout         = "2006-01-02"
	faceImagePrefix   = "data:image/"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,50}$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

func validUsername(s string) bool { return usernamePattern.MatchString(s) }

func validEmail(s string) bool { return emailPattern.MatchString(s) }

// NormalizeNID strips everything but digits from raw.
func NormalizeNID(raw string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
}

// validNIDLength reports whether n has one of the issued NID lengths: 10
// (smart card), 13 (legacy) or 17 (legacy with birth year).
func validNIDLength(n string) bool {
	switch len(n) {
	case 10, 13, 17:
		return true
	}
	return false
}

func validFaceImage(s string) bool { return strings.HasPrefix(s, faceImagePrefix) }

// JoinLocation renders an address most specific part first, skipping empty
// parts.
func JoinLocation(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// ParseDOB parses a YYYY-MM-DD date of birth.
func ParseDOB(s string) (time.Time, error) {
	return time.Parse(dobLayout, strings.TrimSpace(s))
}

// AgeAt returns the whole years between dob and now. The birthday itself
// counts as a completed year.
func AgeAt(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// isBlank reports whether any of values is empty after trimming.
func isBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

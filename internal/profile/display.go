package profile

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/healthsense/healthsense/internal/types"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// DisplayName capitalizes the first letter of the stored name.
// Profiles with no name render as "User".
func DisplayName(p types.UserProfile) string {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return "User"
	}
	return Capitalize(name)
}

// Capitalize upper-cases the first rune and leaves the rest untouched
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// DerivedEmail builds a placeholder contact address from the raw name:
// whitespace collapses to dots and the result is lower-cased.
func DerivedEmail(p types.UserProfile) string {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = "User"
	}
	return strings.ToLower(whitespaceRe.ReplaceAllString(name, ".")) + "@example.com"
}

// Photo returns the profile photo, falling back to the deterministic
// avatar when none was ever set.
func Photo(p types.UserProfile) string {
	if p.Photo != "" {
		return p.Photo
	}
	return PickAvatar(p.Name, p.Age, p.Gender)
}

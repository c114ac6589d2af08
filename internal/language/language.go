// Package language resolves user language preferences to the supported
// language codes and their display names.
package language

import "strings"

const (
	English   = "en"
	Hindi     = "hi"
	Marathi   = "mr"
	Punjabi   = "pa"
	Malayalam = "ml"
	Tamil     = "ta"
	Telugu    = "te"
	Kannada   = "kn"

	Default = English
)

type info struct {
	code   string
	name   string
	native string
}

var supported = []info{
	{English, "English", "English"},
	{Hindi, "Hindi", "हिंदी"},
	{Marathi, "Marathi", "मराठी"},
	{Punjabi, "Punjabi", "ਪੰਜਾਬੀ"},
	{Malayalam, "Malayalam", "മലയാളം"},
	{Tamil, "Tamil", "தமிழ்"},
	{Telugu, "Telugu", "తెలుగు"},
	{Kannada, "Kannada", "ಕನ್ನಡ"},
}

// Resolve maps a code or a name ("hi", "Hindi", "हिंदी") to a supported code.
// Unknown or empty input resolves to English.
func Resolve(pref string) string {
	p := strings.ToLower(strings.TrimSpace(pref))
	if p == "" {
		return Default
	}
	for _, l := range supported {
		if p == l.code || p == strings.ToLower(l.name) || p == strings.ToLower(l.native) {
			return l.code
		}
	}
	// "en-US", "hi_IN"
	if len(p) > 2 && (p[2] == '-' || p[2] == '_') {
		return Resolve(p[:2])
	}
	return Default
}

func IsSupported(code string) bool {
	for _, l := range supported {
		if l.code == code {
			return true
		}
	}
	return false
}

// Name returns the English display name of a code, e.g. "Hindi".
func Name(code string) string {
	c := Resolve(code)
	for _, l := range supported {
		if l.code == c {
			return l.name
		}
	}
	return "English"
}

// Label returns "Hindi (हिंदी)" style labels; English stays "English".
func Label(code string) string {
	c := Resolve(code)
	for _, l := range supported {
		if l.code == c {
			if l.name == l.native {
				return l.name
			}
			return l.name + " (" + l.native + ")"
		}
	}
	return "English"
}

func Codes() []string {
	out := make([]string, 0, len(supported))
	for _, l := range supported {
		out = append(out, l.code)
	}
	return out
}

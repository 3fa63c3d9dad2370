package sanitize

// Sanitizer redacts secrets from text before it is sent to a provider.
type Sanitizer struct {
	patterns []Pattern
	enabled  bool
}

// NewSanitizer returns an enabled Sanitizer using the built-in patterns.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{patterns: SecretPatterns(), enabled: true}
}

// NewSanitizerWithPatterns returns an enabled Sanitizer with custom patterns.
func NewSanitizerWithPatterns(patterns []Pattern) *Sanitizer {
	return &Sanitizer{patterns: patterns, enabled: true}
}

// Disabled returns a Sanitizer that passes text through untouched. It is
// used when privacy.sanitize_ai_calls is off.
func Disabled() *Sanitizer {
	return &Sanitizer{}
}

// Sanitize strips escape sequences and replaces every secret match with its
// placeholder.
func (s *Sanitizer) Sanitize(input string) string {
	if input == "" {
		return input
	}
	result := StripANSI(input)
	if s == nil || !s.enabled {
		return result
	}
	for _, p := range s.patterns {
		result = p.Regex.ReplaceAllString(result, p.Replacement)
	}
	return result
}

// DefaultSanitizer is the package-level sanitizer.
var DefaultSanitizer = NewSanitizer()

// Sanitize uses DefaultSanitizer.
func Sanitize(input string) string {
	return DefaultSanitizer.Sanitize(input)
}

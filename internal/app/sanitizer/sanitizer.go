// Package sanitizer scrubs untrusted text before it is written to the
// terminal. Note titles and bodies come from a shared backend; a crafted
// note must not be able to move the cursor, retitle the window, or inject
// control sequences into the display.
package sanitizer

type InputSanitizer interface {
	Sanitize(input string) string
}

type Config struct {
	AllowNewlines      bool
	AllowTabs          bool
	ReplaceNewlineWith string
	MaxLength          int
	CustomPatterns     []*EscapePattern
}

type TerminalSanitizer struct {
	config         Config
	escapePatterns []*EscapePattern
}

func NewTerminalSanitizer(config Config) *TerminalSanitizer {
	patterns := make([]*EscapePattern, len(AllEscapePatterns))
	copy(patterns, AllEscapePatterns)
	patterns = append(patterns, config.CustomPatterns...)

	return &TerminalSanitizer{
		config:         config,
		escapePatterns: patterns,
	}
}

// DefaultConfig suits multi-line note bodies.
func DefaultConfig() Config {
	return Config{
		AllowNewlines: true,
		AllowTabs:     false,
	}
}

// SingleLineConfig suits note titles; newlines collapse to spaces.
func SingleLineConfig() Config {
	return Config{
		AllowNewlines:      false,
		ReplaceNewlineWith: " ",
		AllowTabs:          false,
	}
}

func (s *TerminalSanitizer) Sanitize(input string) string {
	if input == "" {
		return input
	}

	for _, p := range s.escapePatterns {
		input = p.Pattern.ReplaceAllString(input, "")
	}

	var result []rune
	for _, r := range input {
		kept, replacement := s.shouldKeep(r)
		if kept {
			result = append(result, r)
		} else if replacement != "" {
			result = append(result, []rune(replacement)...)
		}
	}

	sanitized := string(result)

	if s.config.MaxLength > 0 && len(sanitized) > s.config.MaxLength {
		sanitized = sanitized[:s.config.MaxLength]
	}

	return sanitized
}

func (s *TerminalSanitizer) shouldKeep(r rune) (bool, string) {
	switch {
	case r == '\n':
		if s.config.AllowNewlines {
			return true, ""
		}
		return false, s.config.ReplaceNewlineWith
	case r == '\t':
		return s.config.AllowTabs, ""
	case r < 32 || r == 127:
		return false, ""
	default:
		return true, ""
	}
}

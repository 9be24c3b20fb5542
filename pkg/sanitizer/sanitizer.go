package sanitizer

import (
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reNonDigits  = regexp.MustCompile(`\D+`)
	reMultiSpace = regexp.MustCompile(`\s+`)
)

func trim(s string) string {
	return strings.TrimSpace(s)
}

func trimAndLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func collapseSpaces(s string) string {
	return reMultiSpace.ReplaceAllString(s, " ")
}

// SanitizeName normalizes a customer name for storage: trimmed, inner
// whitespace collapsed, case preserved.
func SanitizeName(input string) string {
	p := Pipeline{
		trim,
		collapseSpaces,
	}
	return p.Apply(input)
}

func SanitizeEmail(input string) string {
	p := Pipeline{
		trimAndLower,
	}
	return p.Apply(input)
}

// SanitizePhone strips formatting characters so "98765-43210" and
// "98765 43210" both normalize to the bare digit string the validator and
// the phone-keyed customer lookup expect.
func SanitizePhone(input string) string {
	p := Pipeline{
		trim,
		func(s string) string { return reNonDigits.ReplaceAllString(s, "") },
	}
	return p.Apply(input)
}

func SanitizeSlice(values []string, strategy Strategy) []string {
	seen := make(map[string]struct{})
	out := []string{}

	for _, v := range values {
		s := strategy(v)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out
}

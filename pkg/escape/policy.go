package escape

import (
	"sort"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/textesc/pkg/codepoint"
)

// Policy reports whether cp must be written as an escape sequence rather
// than raw UTF-8. Policies are pure functions.
type Policy func(cp codepoint.Codepoint) bool

// ErrUnknownPolicy is returned by PolicyByName.
var ErrUnknownPolicy = errors.Base("unknown escape policy")

// DefaultPolicy escapes what cannot appear raw in a double-quoted UTF-8
// string literal: control characters other than tab, newline and carriage
// return, the backslash, the double quote, and DEL. Non-ASCII codepoints are
// left raw.
func DefaultPolicy(cp codepoint.Codepoint) bool {
	if cp < ' ' {
		return cp != '\t' && cp != '\n' && cp != '\r'
	}
	if cp <= 0x7F {
		return cp == '\\' || cp == '"' || cp == 0x7F
	}
	return false
}

// AlwaysEscape escapes every codepoint.
func AlwaysEscape(codepoint.Codepoint) bool {
	return true
}

// NeverEscape writes every codepoint raw.
func NeverEscape(codepoint.Codepoint) bool {
	return false
}

// EscapeNonASCII keeps output printable ASCII: every control character, both
// quotes, the backslash, DEL and everything above ASCII is escaped.
func EscapeNonASCII(cp codepoint.Codepoint) bool {
	return cp < ' ' || cp >= 0x7F || cp == '\\' || cp == '"' || cp == '\''
}

var policies = map[string]Policy{
	"default":   DefaultPolicy,
	"always":    AlwaysEscape,
	"never":     NeverEscape,
	"non-ascii": EscapeNonASCII,
}

// PolicyByName looks up one of the built-in policies. The empty name is the
// default policy.
func PolicyByName(name string) (Policy, error) {
	if name == "" {
		return DefaultPolicy, nil
	}
	p, ok := policies[strings.ToLower(name)]
	if !ok {
		return nil, errors.Errorf("%w %q (known: %s)", ErrUnknownPolicy, name, strings.Join(PolicyNames(), ", "))
	}
	return p, nil
}

// PolicyNames lists the names PolicyByName accepts, sorted.
func PolicyNames() []string {
	names := make([]string, 0, len(policies))
	for name := range policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

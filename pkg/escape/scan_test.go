package escape_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/walteh/textesc/pkg/codepoint"
	"github.com/walteh/textesc/pkg/escape"
)

func TestScan(t *testing.T) {
	const rc = codepoint.ReplacementChar

	tests := []struct {
		name       string
		input      string
		wantCP     codepoint.Codepoint
		wantN      int
		wantStatus escape.ScanStatus
	}{
		{name: "newline", input: "n...", wantCP: '\n', wantN: 1},
		{name: "carriage_return", input: "r", wantCP: '\r', wantN: 1},
		{name: "tab", input: "t", wantCP: '\t', wantN: 1},
		{name: "form_feed", input: "f", wantCP: '\f', wantN: 1},
		{name: "vertical_tab", input: "v", wantCP: '\v', wantN: 1},
		{name: "backspace", input: "b", wantCP: '\b', wantN: 1},
		{name: "bell", input: "a", wantCP: '\a', wantN: 1},
		{name: "backslash", input: `\x`, wantCP: '\\', wantN: 1},
		{name: "double_quote", input: `"`, wantCP: '"', wantN: 1},
		{name: "single_quote", input: `'`, wantCP: '\'', wantN: 1},
		{name: "hex", input: "x41...", wantCP: 0x41, wantN: 3},
		{name: "hex_lowercase", input: "x7f", wantCP: 0x7F, wantN: 3},
		{name: "hex_stops_after_two", input: "x414", wantCP: 0x41, wantN: 3},
		{name: "unicode_4", input: "u00E9rest", wantCP: 0xE9, wantN: 5},
		{name: "unicode_8", input: "U0001F600", wantCP: 0x1F600, wantN: 9},
		{name: "unicode_8_max", input: "U0010FFFF", wantCP: codepoint.MaxCodepoint, wantN: 9},
		{name: "literal_replacement_char", input: "uFFFD", wantCP: rc, wantN: 5},
		{name: "octal_one_digit", input: "0", wantCP: 0, wantN: 1},
		{name: "octal_three_digits", input: "101", wantCP: 'A', wantN: 3},
		{name: "octal_stops_at_three", input: "1012", wantCP: 'A', wantN: 3},
		{name: "octal_stops_at_non_octal", input: "18", wantCP: 1, wantN: 1},
		{name: "octal_max", input: "777", wantCP: 0o777, wantN: 3},
		{name: "unknown_letter", input: "q", wantCP: rc, wantN: 1, wantStatus: escape.Invalid},
		{name: "digit_8_is_not_octal", input: "8", wantCP: rc, wantN: 1, wantStatus: escape.Invalid},
		{name: "hex_bad_digit", input: "x4g", wantCP: rc, wantN: 1, wantStatus: escape.Invalid},
		{name: "unicode_too_few_digits", input: "u12 ", wantCP: rc, wantN: 1, wantStatus: escape.Invalid},
		{name: "unicode_above_max", input: "U00110000", wantCP: rc, wantN: 1, wantStatus: escape.Invalid},
		{name: "unicode_surrogate", input: "uD800", wantCP: rc, wantN: 1, wantStatus: escape.Invalid},
		{name: "hex_truncated", input: "x4", wantCP: rc, wantN: 1, wantStatus: escape.Truncated},
		{name: "unicode_8_truncated", input: "U0001", wantCP: rc, wantN: 1, wantStatus: escape.Truncated},
		{name: "empty", input: "", wantCP: rc, wantN: 0, wantStatus: escape.Truncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := escape.ScanSequence([]byte(tt.input))
			assert.Equal(t, tt.wantCP, res.Codepoint)
			assert.Equal(t, tt.wantN, res.N)
			assert.Equal(t, tt.wantStatus, res.Status, "status %s", res.Status)

			cp, n := escape.Scan([]byte(tt.input))
			assert.Equal(t, tt.wantCP, cp)
			assert.Equal(t, tt.wantN, n)
		})
	}
}

func TestScanStatusString(t *testing.T) {
	assert.Equal(t, "scanned", escape.Scanned.String())
	assert.Equal(t, "invalid", escape.Invalid.String())
	assert.Equal(t, "truncated", escape.Truncated.String())
	assert.Equal(t, "unknown", escape.ScanStatus(9).String())
}

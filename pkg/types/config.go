package types

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultMaxBytes keeps every chunk below common e-commerce upload limits.
const DefaultMaxBytes = 19 * 1024 * 1024

// DefaultTickEvery is the number of work units between OnTick calls.
const DefaultTickEvery = 100

// Supported delimiter names.
const (
	DelimiterComma     = "comma"
	DelimiterSemicolon = "semicolon"
	DelimiterPipe      = "pipe"
	DelimiterTab       = "tab"
)

// delimiters maps each delimiter name to the separator it writes.
var delimiters = map[string]string{
	DelimiterComma:     ",",
	DelimiterSemicolon: ";",
	DelimiterPipe:      "|",
	DelimiterTab:       "\t",
}

// Options validation errors.
var (
	ErrDelimiterUnknown = errors.New("unknown delimiter")
	ErrMaxBytesInvalid  = errors.New("max bytes must be positive")
	ErrTickEveryInvalid = errors.New("tick cadence must not be negative")
)

// Options holds the parameters of one export run.
type Options struct {
	// Delimiter is the field separator: one of "," ";" "|" or "\t".
	Delimiter string `json:"delimiter" yaml:"delimiter"`

	// MaxBytes is the budget of a single chunk, header and BOM included.
	MaxBytes int `json:"max_bytes" yaml:"max_bytes"`

	// TickEvery is the OnTick cadence in work units. Zero disables ticks.
	TickEvery int `json:"tick_every" yaml:"tick_every"`
}

// DefaultOptions returns comma-delimited options with the default budget.
func DefaultOptions() Options {
	return Options{
		Delimiter: ",",
		MaxBytes:  DefaultMaxBytes,
		TickEvery: DefaultTickEvery,
	}
}

// Validate checks that the Options are well-formed. It returns a sentinel
// error from this package on failure.
func (o Options) Validate() error {
	if !isSeparator(o.Delimiter) {
		return fmt.Errorf("%w: %q", ErrDelimiterUnknown, o.Delimiter)
	}
	if o.MaxBytes <= 0 {
		return ErrMaxBytesInvalid
	}
	if o.TickEvery < 0 {
		return ErrTickEveryInvalid
	}
	return nil
}

// ParseDelimiter resolves a delimiter name ("comma", "tab", ...) or a literal
// separator ("," ";" "|" or a tab) to the separator string.
func ParseDelimiter(s string) (string, error) {
	if isSeparator(s) {
		return s, nil
	}
	if sep, ok := delimiters[strings.ToLower(strings.TrimSpace(s))]; ok {
		return sep, nil
	}
	if s == `\t` {
		return "\t", nil
	}
	return "", fmt.Errorf("%w: %q", ErrDelimiterUnknown, s)
}

// DelimiterName returns the name of a separator, or "" if it is not supported.
func DelimiterName(sep string) string {
	for name, v := range delimiters {
		if v == sep {
			return name
		}
	}
	return ""
}

func isSeparator(s string) bool {
	for _, v := range delimiters {
		if v == s {
			return true
		}
	}
	return false
}

// Package locale resolves requested site languages and serves the translated
// copy for each of them.
package locale

import (
	"fmt"
	"slices"

	"golang.org/x/text/language"
)

// Code is a supported site language, e.g. "sk".
type Code string

const (
	Slovak  Code = "sk"
	English Code = "en"
)

// Supported lists the site languages in display order.
var Supported = []Code{Slovak, English}

// Default is served when the request names no supported language.
const Default = Slovak

// ParseCode checks that s is a well formed BCP 47 language tag and returns it
// as a Code. Region and script subtags are kept verbatim.
func ParseCode(s string) (Code, error) {
	if _, err := language.Parse(s); err != nil {
		return "", fmt.Errorf("invalid language tag %q: %w", s, err)
	}
	return Code(s), nil
}

// Resolver maps arbitrary input onto a supported code.
type Resolver struct {
	supported []Code
	fallback  Code
}

// NewResolver builds a resolver. The fallback must be one of supported.
func NewResolver(supported []Code, fallback Code) (*Resolver, error) {
	if len(supported) == 0 {
		return nil, fmt.Errorf("no supported locales")
	}
	for _, code := range supported {
		if _, err := ParseCode(string(code)); err != nil {
			return nil, err
		}
	}
	if !slices.Contains(supported, fallback) {
		return nil, fmt.Errorf("default locale %q is not supported", fallback)
	}
	return &Resolver{supported: slices.Clone(supported), fallback: fallback}, nil
}

// Resolve returns input when it exactly matches a supported code and the
// default otherwise. Matching is case sensitive and ignores region subtags,
// so "EN" and "en-US" both resolve to the default.
func (r *Resolver) Resolve(input string) Code {
	for _, code := range r.supported {
		if string(code) == input {
			return code
		}
	}
	return r.fallback
}

// Supported returns the supported codes in display order.
func (r *Resolver) Supported() []Code {
	return slices.Clone(r.supported)
}

// Default returns the fallback code.
func (r *Resolver) Default() Code {
	return r.fallback
}

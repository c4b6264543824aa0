/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package reason

import (
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Reason is the canonical, validated representation of an error reason.
type Reason string

// MinLength and MaxLength bound a non-empty reason. The empty reason is
// handled separately.
const (
	MinLength = 3
	MaxLength = 128

	// MaxSegments is the maximum number of dot-separated segments.
	MaxSegments = 4
)

// reasonFmt accepts 1..MaxSegments segments of [a-z][a-z0-9_]*.
// Keep the {0,3} quantifier in sync with MaxSegments.
const reasonFmt = `^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*){0,3}$`

var reasonRe = regexp.MustCompile(reasonFmt)

var (
	// ErrReasonInvalidFormat is returned when a reason has bad characters,
	// empty segments or too many segments.
	ErrReasonInvalidFormat = errors.New("coreerr: invalid reason format")
	// ErrReasonInvalidLength is returned when a reason is too short or too long.
	ErrReasonInvalidLength = errors.New("coreerr: invalid reason length")
)

var (
	_ encoding.TextMarshaler   = (*Reason)(nil)
	_ encoding.TextUnmarshaler = (*Reason)(nil)
)

// Empty means "no reason provided".
var Empty Reason = ""

// Normalize trims, lowercases, turns '/' into '.' and '-' into '_'.
// It does not guarantee validity.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "/", ".")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// Parse normalizes and validates s. The empty string parses to Empty
// without error.
func Parse(s string) (Reason, error) {
	s = Normalize(s)
	if s == "" {
		return Empty, nil
	}
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Reason(s), nil
}

// MustParse is like Parse but panics on invalid input. Unlike Parse it
// also rejects the empty string.
func MustParse(s string) Reason {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	if r == Empty {
		panic("coreerr: empty reason in MustParse")
	}
	return r
}

// Join builds a reason from component names, normalizing each one:
//
//	reason.Join("Coupon", "issue", "duplicate") // "coupon.issue.duplicate"
func Join(segments ...string) (Reason, error) {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, Normalize(s))
	}
	joined := strings.Join(parts, ".")
	if joined == "" {
		return Empty, ErrReasonInvalidFormat
	}
	if err := validate(joined); err != nil {
		return Empty, err
	}
	return Reason(joined), nil
}

// Validate reports whether r is canonical. Empty is valid.
func Validate(r Reason) error {
	if r == Empty {
		return nil
	}
	return validate(string(r))
}

func (r Reason) String() string {
	return string(r)
}

// Segments splits r on dots. Empty yields nil.
func (r Reason) Segments() []string {
	if r == Empty {
		return nil
	}
	return strings.Split(string(r), ".")
}

// HasPrefix reports whether p is a whole-segment prefix of r.
// Every reason has the empty prefix.
func (r Reason) HasPrefix(p Reason) bool {
	if p == Empty {
		return true
	}
	if !strings.HasPrefix(string(r), string(p)) {
		return false
	}
	return len(r) == len(p) || r[len(p)] == '.'
}

// MarshalText implements encoding.TextMarshaler. Empty marshals to an
// empty slice.
func (r Reason) MarshalText() ([]byte, error) {
	if err := Validate(r); err != nil {
		return nil, err
	}
	if r == Empty {
		return []byte{}, nil
	}
	return []byte(r), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Blank input yields Empty.
func (r *Reason) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func validate(s string) error {
	if len(s) < MinLength || len(s) > MaxLength {
		return ErrReasonInvalidLength
	}
	if !reasonRe.MatchString(s) {
		return ErrReasonInvalidFormat
	}
	return nil
}

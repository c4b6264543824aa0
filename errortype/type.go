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

package errortype

import (
	"bytes"
	"encoding"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Type is the canonical, validated name of an error type.
//
// It is a distinct type (not a plain string) so raw user input cannot be
// passed where a normalized value is expected.
type Type string

// MinLength and MaxLength bound the length of a canonical type name.
const (
	MinLength = 3
	MaxLength = 64
)

// typeFmt must stay in sync with MinLength / MaxLength: one leading letter
// plus {2,63} more characters gives 3..64.
const typeFmt = `^[a-z][a-z0-9_]{2,63}$`

var typeRe = regexp.MustCompile(typeFmt)

// ErrInvalidType is returned (wrapped) when a value cannot be parsed or
// validated as an error type.
var ErrInvalidType = errors.New("coreerr: invalid error type")

var (
	_ encoding.TextMarshaler   = (*Type)(nil)
	_ encoding.TextUnmarshaler = (*Type)(nil)
)

// Empty is the zero-value type. It is never valid.
var Empty Type = ""

// Parse normalizes and validates s.
func Parse(s string) (Type, error) {
	s = Normalize(s)
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Type(s), nil
}

// MustParse is like Parse but panics on invalid input. Meant for
// package-level declarations of custom types.
func MustParse(s string) Type {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Normalize trims surrounding space, lowercases and replaces '-' with '_'.
// The result is not guaranteed to be valid.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// Validate reports whether t is in canonical form.
func Validate(t Type) error {
	return validate(string(t))
}

func (t Type) String() string {
	return string(t)
}

// Upper returns the enum-style spelling, e.g. "NOT_FOUND".
// gRPC ErrorInfo reasons use this form.
func (t Type) Upper() string {
	return strings.ToUpper(string(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if err := Validate(t); err != nil {
		return nil, err
	}
	return []byte(t), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The input is
// normalized before validation.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func validate(s string) error {
	if !typeRe.MatchString(s) {
		return fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
	return nil
}

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

package mapper

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"dirpx.dev/coreerr/errortype"
	"google.golang.org/grpc/codes"
)

// Config is the declarative form of mapper options, as read from a YAML
// file or environment:
//
//	fallback_http: 500
//	fallback_grpc: INTERNAL
//	rules:
//	  - type: unavailable
//	    reason: payment.gateway
//	    http: 502
//	  - type: canceled
//	    override: true
//	    http: 499
//	    grpc: CANCELLED
type Config struct {
	FallbackHTTP int    `koanf:"fallback_http" json:"fallback_http,omitempty"`
	FallbackGRPC string `koanf:"fallback_grpc" json:"fallback_grpc,omitempty"`
	Rules        []Rule `koanf:"rules" json:"rules,omitempty"`
}

// Rule is one mapping entry. With a Reason it is a prefix rule; without
// one it replaces the type default, or overrides every reason when
// Override is set. At least one of HTTP and GRPC must be given.
type Rule struct {
	Type     string `koanf:"type" json:"type"`
	Reason   string `koanf:"reason" json:"reason,omitempty"`
	HTTP     int    `koanf:"http" json:"http,omitempty"`
	GRPC     string `koanf:"grpc" json:"grpc,omitempty"`
	Override bool   `koanf:"override" json:"override,omitempty"`
}

// ErrInvalidConfig is wrapped by every error Options returns.
var ErrInvalidConfig = errors.New("mapper: invalid config")

// Options validates c and converts it into build options. Prefix syntax is
// checked later by New.
func (c Config) Options() ([]Option, error) {
	var opts []Option
	var errs []error

	if c.FallbackHTTP != 0 || c.FallbackGRPC != "" {
		h := c.FallbackHTTP
		if h == 0 {
			h = 500
		}
		g := codes.Internal
		if c.FallbackGRPC != "" {
			parsed, err := ParseGRPCCode(c.FallbackGRPC)
			if err != nil {
				errs = append(errs, fmt.Errorf("fallback_grpc: %w", err))
			}
			g = parsed
		}
		if err := checkHTTP(h); err != nil {
			errs = append(errs, fmt.Errorf("fallback_http: %w", err))
		}
		opts = append(opts, WithFallback(h, g))
	}

	for i, r := range c.Rules {
		ruleOpts, err := r.options()
		if err != nil {
			errs = append(errs, fmt.Errorf("rules[%d]: %w", i, err))
			continue
		}
		opts = append(opts, ruleOpts...)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return opts, nil
}

func (r Rule) options() ([]Option, error) {
	t, err := errortype.Parse(r.Type)
	if err != nil {
		return nil, err
	}
	if r.HTTP == 0 && r.GRPC == "" {
		return nil, fmt.Errorf("type %q: neither http nor grpc set", t)
	}
	if r.Override && r.Reason != "" {
		return nil, fmt.Errorf("type %q: override cannot be combined with a reason", t)
	}

	var opts []Option
	if r.HTTP != 0 {
		if err := checkHTTP(r.HTTP); err != nil {
			return nil, fmt.Errorf("type %q: %w", t, err)
		}
		switch {
		case r.Reason != "":
			opts = append(opts, WithHTTPPrefix(t, r.Reason, r.HTTP))
		case r.Override:
			opts = append(opts, WithHTTPOverride(t, r.HTTP))
		default:
			opts = append(opts, WithHTTPDefault(t, r.HTTP))
		}
	}
	if r.GRPC != "" {
		g, err := ParseGRPCCode(r.GRPC)
		if err != nil {
			return nil, fmt.Errorf("type %q: %w", t, err)
		}
		switch {
		case r.Reason != "":
			opts = append(opts, WithGRPCPrefix(t, r.Reason, g))
		case r.Override:
			opts = append(opts, WithGRPCOverride(t, g))
		default:
			opts = append(opts, WithGRPCDefault(t, g))
		}
	}
	return opts, nil
}

func checkHTTP(status int) error {
	if status < 100 || status > 599 {
		return fmt.Errorf("http status %d out of range", status)
	}
	return nil
}

// ParseGRPCCode accepts a canonical code name ("NOT_FOUND", case
// insensitive, "CANCELED" as an alias of "CANCELLED") or its number.
func ParseGRPCCode(s string) (codes.Code, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "CANCELED" {
		s = "CANCELLED"
	}
	var c codes.Code
	raw := s
	if _, err := strconv.Atoi(s); err != nil {
		raw = strconv.Quote(s)
	}
	if err := c.UnmarshalJSON([]byte(raw)); err != nil {
		return codes.Unknown, fmt.Errorf("grpc code %q: %w", s, err)
	}
	return c, nil
}

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
	"strings"

	"dirpx.dev/coreerr/apis"
	"dirpx.dev/coreerr/errortype"
	"dirpx.dev/coreerr/mapper/internal/segmenttrie"
	"dirpx.dev/coreerr/reason"
	"google.golang.org/grpc/codes"
)

// ErrInvalidRule is wrapped by every error New returns for a bad prefix
// or an HTTP status outside 100..599.
var ErrInvalidRule = errors.New("mapper: invalid rule")

type ruleError struct {
	t         errortype.Type
	transport string
	prefix    string
	err       error
}

func (e ruleError) Error() string {
	return fmt.Sprintf("%s reason-prefix %q for type %q: %v", e.transport, e.prefix, e.t, e.err)
}

// New builds an immutable Mapper.
//
// The builder is seeded with the errortype catalogue (HTTP) and the
// built-in gRPC codes, then options are applied in order, then prefix
// rules are compiled into per-type segment tries. All invalid prefixes
// and HTTP statuses are reported together.
func New(opts ...Option) (apis.Mapper, error) {
	b := newBuilder()
	for _, d := range errortype.All() {
		b.httpDefaults[d.Type] = d.HTTPStatus
	}
	for t, c := range defaultGRPC {
		b.grpcDefaults[t] = int(c)
	}

	for _, opt := range opts {
		opt(b)
	}

	httpTrie, httpErrs := buildTries(b.httpPrefixes, func(v int) int { return v })
	grpcTrie, grpcErrs := buildTries(b.grpcPrefixes, func(v int) codes.Code { return codes.Code(v) })

	errs := b.invalidStatuses()
	for _, e := range httpErrs {
		e.transport = "http"
		errs = append(errs, e)
	}
	for _, e := range grpcErrs {
		e.transport = "grpc"
		errs = append(errs, e)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRule, errors.Join(errs...))
	}

	return &mapper{
		httpDefault:  freeze(b.httpDefaults),
		grpcDefault:  toGRPC(b.grpcDefaults),
		httpOverride: freeze(b.httpOverride),
		grpcOverride: toGRPC(b.grpcOverride),
		httpTrie:     httpTrie,
		grpcTrie:     grpcTrie,
		fallbackHTTP: b.fallbackHTTP,
		fallbackGRPC: b.fallbackGRPC,
	}, nil
}

// Must is like New but panics on error. For package-level mappers built
// from literal rules.
func Must(opts ...Option) apis.Mapper {
	m, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return m
}

type mapper struct {
	httpDefault  map[errortype.Type]int
	grpcDefault  map[errortype.Type]codes.Code
	httpOverride map[errortype.Type]int
	grpcOverride map[errortype.Type]codes.Code

	// Tries are immutable after New; lookups are O(reason depth).
	httpTrie map[errortype.Type]*segmenttrie.Trie[int]
	grpcTrie map[errortype.Type]*segmenttrie.Trie[codes.Code]

	fallbackHTTP int
	fallbackGRPC codes.Code
}

// Source names the tier that produced a status.
const (
	SourceOverride = "override"
	SourcePrefix   = "prefix"
	SourceDefault  = "default"
	SourceFallback = "fallback"
)

// resolution is one tier lookup. pattern is set only for prefix hits.
type resolution[V any] struct {
	val     V
	source  string
	pattern string
}

func resolve[V any](
	t errortype.Type, r reason.Reason,
	override, defaults map[errortype.Type]V,
	tries map[errortype.Type]*segmenttrie.Trie[V],
	fallback V,
) resolution[V] {
	if v, ok := override[t]; ok {
		return resolution[V]{val: v, source: SourceOverride}
	}
	if tr := tries[t]; tr != nil {
		if v, ok, pat := tr.MatchWithPattern(string(r)); ok {
			return resolution[V]{val: v, source: SourcePrefix, pattern: pat}
		}
	}
	if v, ok := defaults[t]; ok {
		return resolution[V]{val: v, source: SourceDefault}
	}
	return resolution[V]{val: fallback, source: SourceFallback}
}

func (m *mapper) resolveHTTP(t errortype.Type, r reason.Reason) resolution[int] {
	return resolve(t, r, m.httpOverride, m.httpDefault, m.httpTrie, m.fallbackHTTP)
}

func (m *mapper) resolveGRPC(t errortype.Type, r reason.Reason) resolution[codes.Code] {
	return resolve(t, r, m.grpcOverride, m.grpcDefault, m.grpcTrie, m.fallbackGRPC)
}

func (m *mapper) HTTPStatus(t errortype.Type, r reason.Reason) int {
	return m.resolveHTTP(t, r).val
}

func (m *mapper) GRPCStatus(t errortype.Type, r reason.Reason) codes.Code {
	return m.resolveGRPC(t, r).val
}

func (m *mapper) Status(t errortype.Type, r reason.Reason) apis.Status {
	return apis.Status{
		HTTP: m.HTTPStatus(t, r),
		GRPC: m.GRPCStatus(t, r),
	}
}

// Explain renders, for example:
//
//	type="unavailable" reason="payment.gateway.timeout"
//	http: source=prefix pattern="payment.gateway" -> 502
//	grpc: source=default -> UNAVAILABLE(14)
func (m *mapper) Explain(t errortype.Type, r reason.Reason) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "type=%q reason=%q\n", string(t), string(r))

	h := m.resolveHTTP(t, r)
	_, _ = fmt.Fprintf(&b, "http: %s -> %d\n", sourceLabel(h.source, h.pattern), h.val)

	g := m.resolveGRPC(t, r)
	_, _ = fmt.Fprintf(&b, "grpc: %s -> %s(%d)", sourceLabel(g.source, g.pattern), grpcName(g.val), int(g.val))

	return b.String()
}

func sourceLabel(source, pattern string) string {
	if source == SourcePrefix {
		return fmt.Sprintf("source=%s pattern=%q", source, pattern)
	}
	return "source=" + source
}

// normalizePrefix canonicalizes a rule prefix. Segments are
// [a-z][a-z0-9_]* or "*", and at least one must be literal.
func normalizePrefix(raw string) (string, error) {
	p := reason.Normalize(raw)
	if p == "" {
		return "", errors.New("empty prefix")
	}
	allWild := true
	for _, seg := range strings.Split(p, ".") {
		if !segmenttrie.ValidSegment(seg, true) {
			return "", fmt.Errorf("invalid segment %q", seg)
		}
		if seg != "*" {
			allWild = false
		}
	}
	if allWild {
		return "", errors.New("prefix cannot consist of '*' only")
	}
	return p, nil
}

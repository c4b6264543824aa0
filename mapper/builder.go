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
	"fmt"
	"net/http"
	"sort"

	"dirpx.dev/coreerr/errortype"
	"google.golang.org/grpc/codes"
)

type prefixRule struct {
	// prefix is raw; it is normalized and validated in New.
	prefix string
	val    int
}

// builder collects options before New freezes them. gRPC values are kept
// as ints so both transports share one rule shape.
type builder struct {
	httpDefaults map[errortype.Type]int
	grpcDefaults map[errortype.Type]int

	httpOverride map[errortype.Type]int
	grpcOverride map[errortype.Type]int

	httpPrefixes map[errortype.Type][]prefixRule
	grpcPrefixes map[errortype.Type][]prefixRule

	fallbackHTTP int
	fallbackGRPC codes.Code
}

func newBuilder() *builder {
	return &builder{
		httpDefaults: make(map[errortype.Type]int, len(defaultGRPC)),
		grpcDefaults: make(map[errortype.Type]int, len(defaultGRPC)),

		httpOverride: make(map[errortype.Type]int),
		grpcOverride: make(map[errortype.Type]int),
		httpPrefixes: make(map[errortype.Type][]prefixRule),
		grpcPrefixes: make(map[errortype.Type][]prefixRule),

		fallbackHTTP: http.StatusInternalServerError,
		fallbackGRPC: codes.Internal,
	}
}

// invalidStatuses reports every HTTP status outside 100..599, ordered by
// type so the joined error is stable.
func (b *builder) invalidStatuses() []error {
	var errs []error
	check := func(kind string, t errortype.Type, status int) {
		if err := checkHTTP(status); err != nil {
			errs = append(errs, fmt.Errorf("http %s for type %q: %w", kind, t, err))
		}
	}
	for _, t := range sortedTypes(b.httpDefaults) {
		check("default", t, b.httpDefaults[t])
	}
	for _, t := range sortedTypes(b.httpOverride) {
		check("override", t, b.httpOverride[t])
	}
	for _, t := range sortedTypes(b.httpPrefixes) {
		for _, r := range b.httpPrefixes[t] {
			check(fmt.Sprintf("reason-prefix %q", r.prefix), t, r.val)
		}
	}
	if err := checkHTTP(b.fallbackHTTP); err != nil {
		errs = append(errs, fmt.Errorf("http fallback: %w", err))
	}
	return errs
}

func sortedTypes[V any](m map[errortype.Type]V) []errortype.Type {
	out := make([]errortype.Type, 0, len(m))
	for t := range m {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

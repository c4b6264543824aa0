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
	"strings"

	"dirpx.dev/coreerr/errortype"
	"dirpx.dev/coreerr/mapper/internal/segmenttrie"
	"google.golang.org/grpc/codes"
)

// freeze copies a builder map so the Mapper never shares storage with
// the builder. Empty maps become nil.
func freeze[V any](src map[errortype.Type]V) map[errortype.Type]V {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[errortype.Type]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// toGRPC converts builder ints into typed gRPC codes.
func toGRPC(src map[errortype.Type]int) map[errortype.Type]codes.Code {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[errortype.Type]codes.Code, len(src))
	for k, v := range src {
		dst[k] = codes.Code(v)
	}
	return dst
}

// buildTries compiles per-type prefix rules. conv turns the builder int
// into the trie value type.
func buildTries[V any](rules map[errortype.Type][]prefixRule, conv func(int) V) (map[errortype.Type]*segmenttrie.Trie[V], []ruleError) {
	out := make(map[errortype.Type]*segmenttrie.Trie[V], len(rules))
	var errs []ruleError
	for t, rs := range rules {
		if len(rs) == 0 {
			continue
		}
		tr := segmenttrie.New[V]()
		for _, r := range rs {
			p, err := normalizePrefix(r.prefix)
			if err == nil {
				err = tr.Insert(p, conv(r.val))
			}
			if err != nil {
				errs = append(errs, ruleError{t: t, prefix: r.prefix, err: err})
			}
		}
		out[t] = tr
	}
	return freeze(out), errs
}

// grpcName renders a code in the UPPER_SNAKE form used in gRPC docs,
// e.g. DeadlineExceeded -> DEADLINE_EXCEEDED.
func grpcName(c codes.Code) string {
	s := c.String()
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if i > 0 && ch >= 'A' && ch <= 'Z' && s[i-1] >= 'a' && s[i-1] <= 'z' {
			b.WriteByte('_')
		}
		b.WriteByte(ch)
	}
	return strings.ToUpper(b.String())
}

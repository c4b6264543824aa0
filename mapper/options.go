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
	"dirpx.dev/coreerr/errortype"
	"google.golang.org/grpc/codes"
)

// Option configures a Mapper at build time.
type Option func(*builder)

// WithHTTPDefault replaces the catalogue HTTP status for t.
func WithHTTPDefault(t errortype.Type, status int) Option {
	return func(b *builder) { b.httpDefaults[t] = status }
}

// WithGRPCDefault replaces the built-in gRPC code for t.
func WithGRPCDefault(t errortype.Type, code codes.Code) Option {
	return func(b *builder) { b.grpcDefaults[t] = int(code) }
}

// WithHTTPOverride forces the HTTP status for t regardless of reason.
func WithHTTPOverride(t errortype.Type, status int) Option {
	return func(b *builder) { b.httpOverride[t] = status }
}

// WithGRPCOverride forces the gRPC code for t regardless of reason.
func WithGRPCOverride(t errortype.Type, code codes.Code) Option {
	return func(b *builder) { b.grpcOverride[t] = int(code) }
}

// WithHTTPPrefix adds a reason-prefix rule for t. "*" matches one segment.
func WithHTTPPrefix(t errortype.Type, prefix string, status int) Option {
	return func(b *builder) {
		b.httpPrefixes[t] = append(b.httpPrefixes[t], prefixRule{prefix, status})
	}
}

// WithGRPCPrefix adds a reason-prefix rule for t. "*" matches one segment.
func WithGRPCPrefix(t errortype.Type, prefix string, code codes.Code) Option {
	return func(b *builder) {
		b.grpcPrefixes[t] = append(b.grpcPrefixes[t], prefixRule{prefix, int(code)})
	}
}

// WithFallback sets the statuses used for types with no rule at all.
func WithFallback(status int, code codes.Code) Option {
	return func(b *builder) {
		b.fallbackHTTP = status
		b.fallbackGRPC = code
	}
}

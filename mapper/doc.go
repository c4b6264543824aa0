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

// Package mapper resolves coreerr error types and reasons into HTTP and
// gRPC statuses.
//
// # Resolution
//
// For a (type, reason) pair a Mapper tries, in order:
//
//  1. an exact override registered for the type;
//  2. the longest reason-prefix rule registered for the type;
//  3. the type default (seeded from the errortype catalogue);
//  4. the fallback (500 / codes.Internal unless WithFallback says otherwise).
//
// Prefix rules are segment-aware: "payment.gateway" matches
// "payment.gateway.timeout" but not "payment.gateways". A "*" segment
// matches exactly one segment, and at equal depth a literal segment beats
// a wildcard.
//
//	m, err := mapper.New(
//	    mapper.WithHTTPPrefix(errortype.Unavailable, "payment.gateway", http.StatusBadGateway),
//	    mapper.WithHTTPOverride(errortype.Canceled, 499),
//	)
//	st := m.Status(errortype.Unavailable, "payment.gateway.timeout")
//	// st.HTTP == 502, st.GRPC == codes.Unavailable
//
// Rules can also be loaded from configuration, see Config.
//
// A Mapper copies everything it is given and is safe to share between
// goroutines. Explain renders a human-readable trace of a resolution and
// is meant for debugging, not parsing.
package mapper

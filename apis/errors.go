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

package apis

// TypedError is an error classified by an error type, e.g. "not_found".
// Adapters treat an empty or unknown type as internal_error.
type TypedError interface {
	error

	// ErrorCode returns the canonical type name.
	ErrorCode() string
}

// ReasonedError exposes the optional refinement of the type, e.g.
// "coupon.issue.duplicate". It may be empty.
type ReasonedError interface {
	error

	ErrorReason() string
}

// DetailedError exposes structured details, typically per-field
// validation failures. The returned slice must not be modified by the
// caller. Nil means no details.
type DetailedError interface {
	error

	ErrorDetails() []Detail
}

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

// Detail is one structured piece of information attached to an error.
//
// Typical uses: which request field failed validation, which resource
// version conflicted, how long to wait before retrying.
type Detail struct {
	// Type classifies the detail: "field", "conflict", "retry", "extra".
	Type string `json:"type,omitempty"`

	// Field is the logical path of the offending field, e.g. "discountValue".
	Field string `json:"field,omitempty"`

	// Reason is a short explanation such as "required" or "must_be_positive".
	// Not the same thing as the error's reason.
	Reason string `json:"reason,omitempty"`

	// Info carries string-only extras so the detail survives JSON and
	// protobuf round-trips unchanged.
	Info map[string]string `json:"info,omitempty"`
}

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

// ViewProvider is implemented by errors that can render their own
// client-facing view.
type ViewProvider interface {
	error

	ErrorView() ErrorView
}

// ErrorView is what an error looks like to an API client. It holds only
// data that is safe to disclose.
type ErrorView struct {
	// Type is the canonical type name, e.g. "conflict".
	Type string `json:"type"`
	// Reason may be empty.
	Reason string `json:"reason,omitempty"`
	// Message is the custom message, or the type's default message.
	Message string   `json:"message,omitempty"`
	Details []Detail `json:"details,omitempty"`
}

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

// ErrorDescriptor is a flat description of an error together with its
// resolved transport statuses. It is meant for structured logs, traces and
// event payloads where the full error value is not available.
type ErrorDescriptor struct {
	Type   string `json:"type"`
	Reason string `json:"reason,omitempty"`

	// HTTPStatus and GRPCCode are 0 when unresolved.
	HTTPStatus int `json:"http_status,omitempty"`
	GRPCCode   int `json:"grpc_code,omitempty"`

	Message string `json:"message,omitempty"`
}

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

package httpx

import (
	"encoding/json"
	"net/http"

	"dirpx.dev/coreerr/apis"
)

// Result is the outcome flag of an envelope.
type Result string

const (
	ResultSuccess Result = "SUCCESS"
	ResultFail    Result = "FAIL"
)

// Meta is the envelope header. Only Result is set on success.
type Meta struct {
	Result    Result `json:"result"`
	ErrorCode string `json:"errorCode,omitempty"`
	Message   string `json:"message,omitempty"`

	// Type and Reason are the canonical classification; ErrorCode is
	// the human-readable status phrase.
	Type      string        `json:"type,omitempty"`
	Reason    string        `json:"reason,omitempty"`
	Details   []apis.Detail `json:"details,omitempty"`
	RequestID string        `json:"requestId,omitempty"`
}

// Response is the JSON envelope written by this package.
type Response struct {
	Meta Meta `json:"meta"`
	Data any  `json:"data"`
}

// Success wraps data in a SUCCESS envelope.
func Success(data any) Response {
	return Response{Meta: Meta{Result: ResultSuccess}, Data: data}
}

// Fail builds a FAIL envelope without data.
func Fail(errorCode, message string) Response {
	return Response{Meta: Meta{Result: ResultFail, ErrorCode: errorCode, Message: message}}
}

const contentTypeJSON = "application/json; charset=utf-8"

// WriteJSON writes data in a SUCCESS envelope with the given status.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	return writeEnvelope(w, status, Success(data))
}

func writeEnvelope(w http.ResponseWriter, status int, resp Response) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_, err = w.Write(b)
	return err
}

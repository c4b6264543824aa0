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

// Package errortype is the catalogue of error types carried by coreerr.Error.
//
// A type is the top-level classification of a failure, the thing a caller
// branches on: "bad_request", "not_found", "conflict", "internal_error".
// Each built-in type knows the HTTP status it surfaces as and a default,
// client-safe message used when the error has no custom message.
//
// Canonical values are lowercase and underscore-separated. Normalize accepts
// the upper-case enum spelling too, so "BAD_REQUEST" and "bad-request" both
// parse to BadRequest.
//
// The empty type is never valid. An error always has a type.
package errortype

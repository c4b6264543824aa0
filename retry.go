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

package coreerr

import (
	"math"
	"strconv"
	"time"
)

// RetryAfterDetail is the detail key holding a retry hint in seconds.
// Transports turn it into Retry-After (HTTP) or RetryInfo (gRPC).
const RetryAfterDetail = "retry_after_seconds"

// WithRetryAfter returns a copy of e carrying a retry hint.
func (e *Error) WithRetryAfter(d time.Duration) *Error {
	return e.WithDetail(RetryAfterDetail, d.Seconds())
}

// RetryAfter reads the RetryAfterDetail detail. Integers, floats, numeric
// strings and time.Duration are accepted; non-positive values and values
// too large for a time.Duration are ignored.
func (e *Error) RetryAfter() (time.Duration, bool) {
	if e == nil {
		return 0, false
	}
	var secs float64
	switch v := e.Details[RetryAfterDetail].(type) {
	case int:
		secs = float64(v)
	case int32:
		secs = float64(v)
	case int64:
		secs = float64(v)
	case uint:
		secs = float64(v)
	case float32:
		secs = float64(v)
	case float64:
		secs = v
	case time.Duration:
		secs = v.Seconds()
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		secs = f
	default:
		return 0, false
	}
	if secs <= 0 || math.IsNaN(secs) {
		return 0, false
	}
	ns := secs * float64(time.Second)
	if ns >= math.MaxInt64 {
		return 0, false
	}
	return time.Duration(ns), true
}

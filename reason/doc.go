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

// Package reason defines the optional refinement of an error type.
//
// The type says what kind of failure happened (bad_request, conflict, ...);
// the reason says where and in which rule:
//
//   - "coupon.issue.duplicate"
//   - "order.stock.insufficient"
//   - "payment.gateway.timeout"
//   - "outbox.publish.already_sent"
//
// A reason is one to four dot-separated segments. The zero value ("") is
// valid and means no refinement was given. Transport mappers match reasons
// by segment prefix, so "payment.gateway" covers every gateway failure.
package reason

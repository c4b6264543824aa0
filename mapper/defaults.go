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

// HTTP defaults come from the errortype catalogue (see New). gRPC has no
// catalogue counterpart, so the built-in codes live here.
var defaultGRPC = map[errortype.Type]codes.Code{
	errortype.InternalError: codes.Internal,
	errortype.BadRequest:    codes.InvalidArgument,
	errortype.NotFound:      codes.NotFound,
	// Conflicts are mostly lost races (optimistic locks, double use of a
	// coupon); Aborted tells clients a retry at a higher level may succeed.
	errortype.Conflict: codes.Aborted,

	errortype.Unauthorized:    codes.Unauthenticated,
	errortype.Forbidden:       codes.PermissionDenied,
	errortype.TooManyRequests: codes.ResourceExhausted,
	errortype.Unavailable:     codes.Unavailable,
	errortype.Timeout:         codes.DeadlineExceeded,
	errortype.Canceled:        codes.Canceled,
}

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

// Package adapter converts *coreerr.Error values into the flat apis
// shapes used by transports, logs and event payloads.
package adapter

import (
	"errors"

	"dirpx.dev/coreerr"
	"dirpx.dev/coreerr/apis"
)

// ToDescriptor flattens e together with its resolved transport status.
// The message is the effective message, so internal errors never carry
// their cause text.
func ToDescriptor(e *coreerr.Error, st apis.Status) apis.ErrorDescriptor {
	if e == nil {
		return apis.ErrorDescriptor{}
	}
	return apis.ErrorDescriptor{
		Type:       e.ErrorCode(),
		Reason:     e.ErrorReason(),
		HTTPStatus: st.HTTP,
		GRPCCode:   int(st.GRPC),
		Message:    e.Message(),
	}
}

// ToView builds the client-facing view of e. Details are copied as
// reported by ErrorDetails; filtering sensitive keys is up to the caller.
func ToView(e *coreerr.Error) apis.ErrorView {
	return e.ErrorView()
}

// ViewOf returns the view of the first apis.ViewProvider in err's chain,
// falling back to the view of coreerr.From(err). A nil err yields the
// zero view.
func ViewOf(err error) apis.ErrorView {
	if err == nil {
		return apis.ErrorView{}
	}
	var vp apis.ViewProvider
	if errors.As(err, &vp) {
		return vp.ErrorView()
	}
	return coreerr.From(err).ErrorView()
}

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

// Package grpcx carries coreerr errors over gRPC.
//
// On the server, interceptors turn returned errors into statuses whose
// code comes from a mapper and whose details hold an
// errdetails.ErrorInfo (Domain "dirpx.dev/coreerr", Reason the upper-case
// error type) plus, for client errors, field violations, retry hints and
// a structpb.Struct of the remaining details. On the client, FromError
// rebuilds the *coreerr.Error.
package grpcx

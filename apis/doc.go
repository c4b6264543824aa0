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

// Package apis holds the small contracts shared by the transport adapters.
//
// HTTP and gRPC code in this module, and in services that consume it, talk
// to errors through these interfaces and view types rather than through
// the concrete coreerr.Error. This keeps adapters testable with fakes and
// lets a service plug its own error type into the same writers.
package apis

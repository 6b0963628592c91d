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

// Package reason converts between failure codes and the reason field of
// google.rpc.ErrorInfo.
//
// Where a Code is lower_snake_case and meant for Go callers ("not_found"),
// a Reason is the UPPER_SNAKE_CASE form that crosses the wire
// ("NOT_FOUND"), as the Google error model recommends. grpcx and httpx use
// FromCode when building ErrorInfo and Reason.Code when decoding it.
package reason

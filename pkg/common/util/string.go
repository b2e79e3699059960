// Copyright 2021 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

// Abbreviate returns the first length bytes of str followed by "..." when
// str is longer. length -1 keeps the complete string, any other negative
// length yields "".
func Abbreviate(str string, length int) string {
	if length == 0 || length < -1 {
		return ""
	}
	if length == -1 || len(str) <= length {
		return str
	}
	return str[:length] + "..."
}

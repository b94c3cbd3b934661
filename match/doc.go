// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package match computes the signals that tie search terms to films.
//
// Genre and theme terms test set membership, era terms test the release
// year against a range, quality and tone terms evaluate configured
// predicates over rating, votes, popularity and genres. Every term is also
// looked up as a word run in the title and the description.
package match

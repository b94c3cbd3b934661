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


// Package recommend answers free-text movie requests.
//
// A Recommender ties the pipeline together for each query:
//   - a fresh vocabulary is loaded, so edits made between queries apply
//   - the query is analyzed into search terms
//   - the whole catalog is read, skipping records that cannot be used
//   - every film is matched and ranked
//
// Recommend always returns the full ranking. Paging is up to the caller.
package recommend

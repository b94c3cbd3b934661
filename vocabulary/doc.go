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


// Package vocabulary maps query words to categorical meaning.
//
// A Provider answers the three questions the query analyzer asks: is this
// token a stop word, what does this word mean, and which known phrase starts
// here. Snapshot is the in-memory Provider; Service manages the persisted
// vocabulary and hands out a fresh Snapshot on every Load, so administrative
// changes are visible to the very next query.
package vocabulary

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


/*
Package analyzer converts a free-text query into search terms.

Queries are tokenized with core.Tokenize, so case, accents and punctuation
never matter. Each token, or run of tokens matching a vocabulary phrase,
becomes a core.SearchTerm whose category comes from the vocabulary. Unknown
words become keyword terms so that they can still match titles and
descriptions.

	a := analyzer.New(cfg)
	terms := a.Analyze("film d'action récent", vocab)
	// keyword:film genre:action era:recent

The analyzer holds no vocabulary of its own. Callers pass a
vocabulary.Provider per call, which lets them reload the vocabulary
between queries.
*/
package analyzer

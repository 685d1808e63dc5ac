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


// Package router maps a user query to the document collection most likely
// to answer it. Routing is keyword-based: each collection carries a
// vocabulary, rules are checked in a fixed priority order, and the first
// collection with a matching keyword wins. A query matching no vocabulary
// routes to core.CollectionNone, which the caller treats as "answer without
// retrieved context".
package router

import (
	"strings"

	"github.com/poiesic/campusbot/core"
)

// rule binds a collection to its trigger vocabulary.
// Multi-word entries match as substrings of the normalized query;
// single words match whole tokens only.
type rule struct {
	collection core.Collection
	keywords   []string
}

// defaultRules is checked in order; earlier collections take priority when a
// query mentions several topics. The order mirrors core.Collections().
var defaultRules = []rule{
	{
		collection: core.CollectionSyllabus,
		keywords: []string{
			"syllabus", "subject", "subjects", "course", "courses", "curriculum",
			"semester", "credits", "elective", "electives", "unit", "units",
			"paper", "papers", "exam", "exams",
		},
	},
	{
		collection: core.CollectionAdmission,
		keywords: []string{
			"admission", "admissions", "apply", "application", "eligibility",
			"eligible", "fee", "fees", "scholarship", "scholarships", "entrance",
			"counselling", "counseling", "seat", "seats", "enroll", "enrollment",
			"cutoff", "cut-off",
		},
	},
	{
		collection: core.CollectionFoodMenu,
		keywords: []string{
			"food", "menu", "meal", "meals", "breakfast", "lunch", "dinner",
			"snacks", "canteen", "cafeteria", "mess", "hostel food",
		},
	},
	{
		collection: core.CollectionBusDetails,
		keywords: []string{
			"bus", "buses", "transport", "transportation", "route", "routes",
			"shuttle", "pickup", "drop", "boarding", "bus timing", "bus stop",
		},
	},
}

// Router routes queries to collections.
type Router struct {
	rules []rule
}

// New creates a Router with the default collection vocabularies.
func New() *Router {
	return &Router{rules: defaultRules}
}

// Route returns the collection whose vocabulary first matches the query, or
// core.CollectionNone when nothing matches. Matching is case-insensitive and
// ignores punctuation.
func (r *Router) Route(query string) core.Collection {
	normalized := normalize(query)
	if normalized == "" {
		return core.CollectionNone
	}

	tokens := make(map[string]bool)
	for _, word := range strings.Fields(normalized) {
		tokens[word] = true
	}

	for _, rule := range r.rules {
		for _, keyword := range rule.keywords {
			if strings.ContainsRune(keyword, ' ') {
				if strings.Contains(normalized, keyword) {
					return rule.collection
				}
				continue
			}
			if tokens[keyword] {
				return rule.collection
			}
		}
	}
	return core.CollectionNone
}

// normalize lowercases the query and trims punctuation from each word.
func normalize(query string) string {
	words := strings.Fields(query)
	cleaned := make([]string, 0, len(words))
	for _, word := range words {
		w := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}"))
		if w != "" {
			cleaned = append(cleaned, w)
		}
	}
	return strings.Join(cleaned, " ")
}

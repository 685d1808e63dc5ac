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


// Package leads extracts contact details from free-form user messages.
//
// Extraction is pattern-based and conservative: each field has an ordered
// list of patterns, the first match wins, and a field that doesn't match
// cleanly is left empty rather than guessed. Extraction is pure and
// idempotent; accumulation across turns happens via core.LeadRecord.Merge.
package leads

import (
	"regexp"
	"strings"

	"github.com/poiesic/campusbot/core"
)

var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bmy name is ([a-zA-Z]+(?:\s+[a-zA-Z]+)*)`),
	regexp.MustCompile(`(?i)\bcall me ([a-zA-Z]+(?:\s+[a-zA-Z]+)*)`),
	regexp.MustCompile(`(?i)\bthis is ([a-zA-Z]+(?:\s+[a-zA-Z]+)*)`),
	regexp.MustCompile(`(?i)\bi am ([a-zA-Z]+(?:\s+[a-zA-Z]+)*)`),
	regexp.MustCompile(`(?i)\bi'm ([a-zA-Z]+(?:\s+[a-zA-Z]+)*)`),
}

// nameStopWords end a name capture. Without them "my name is John and my
// reg number is 12345" would swallow the rest of the sentence.
var nameStopWords = map[string]bool{
	"and": true, "my": true, "from": true, "in": true, "of": true,
	"the": true, "a": true, "an": true, "i": true, "studying": true,
	"here": true, "calling": true, "is": true, "at": true, "with": true,
	"but": true, "so": true, "or": true,
}

// maxNameWords caps a captured name; anything longer is noise.
const maxNameWords = 3

// nameRejectWords disqualify a capture outright. "I am interested in
// admission" introduces nobody called Interested.
var nameRejectWords = map[string]bool{
	"interested": true, "looking": true, "trying": true, "asking": true,
	"wondering": true, "applying": true, "planning": true, "going": true,
	"currently": true, "just": true, "not": true, "also": true, "new": true,
	"sorry": true, "sure": true, "unable": true, "glad": true, "happy": true,
	"fine": true, "good": true, "okay": true, "ok": true, "done": true,
	"confused": true, "waiting": true,
}

var regPatterns = []*regexp.Regexp{
	// Alternation is longest-first so "number" isn't half-eaten by "no".
	regexp.MustCompile(`(?i)\breg(?:istration)?\s*(?:number|num|no)\s*(?:is\s+)?:?\s*([a-zA-Z0-9]+)`),
	regexp.MustCompile(`(?i)\bregistration\s+(?:is\s+)?([a-zA-Z0-9]+)`),
	regexp.MustCompile(`(?i)\bmy\s+reg\s+(?:is\s+)?([a-zA-Z0-9]+)`),
	regexp.MustCompile(`(?i)\bstudent\s+id\s*(?:is\s+)?:?\s*([a-zA-Z0-9]+)`),
}

var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:phone|mobile|contact)\s*(?:number|no)?\s*(?:is\s+)?:?\s*(\+?[0-9][0-9\s\-()]{8,14})`),
	regexp.MustCompile(`(?i)\bcall\s+me\s+(?:at\s+)?(\+?[0-9][0-9\s\-()]{8,14})`),
	regexp.MustCompile(`(?i)\bmy\s+number\s+is\s+(\+?[0-9][0-9\s\-()]{8,14})`),
}

// minPhoneDigits rejects partial numbers like "call me at 123".
const minPhoneDigits = 10

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

var departmentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:studying|from|in)\s+([a-zA-Z][a-zA-Z\s]*?)\s+(?:department|dept)\b`),
	regexp.MustCompile(`(?i)\b([a-zA-Z][a-zA-Z\s]*?)\s+(?:department|dept)\b`),
	regexp.MustCompile(`(?i)\b(?:course|branch)\s*(?:is\s+)?:?\s*([a-zA-Z][a-zA-Z ]*)`),
}

// departmentVocab matches well-known branch names without requiring the word
// "department". The bare pronoun "it" is deliberately absent; Information
// Technology only matches through "it department" or the full phrase.
var departmentVocab = regexp.MustCompile(`(?i)\b(cse|ece|eee|mech|civil|computer science|electronics|electrical|mechanical|information technology)\b`)

// acronymDepartments are kept uppercase instead of title-cased.
var acronymDepartments = map[string]bool{
	"cse": true, "ece": true, "eee": true, "it": true,
}

var yearPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:year|semester|sem)\s*(?:is\s+)?:?\s*([1-4])\b`),
	regexp.MustCompile(`(?i)\b([1-4])(?:st|nd|rd|th)?[\s-]+(?:year|semester|sem)\b`),
	regexp.MustCompile(`(?i)\b(first|second|third|fourth|final)[\s-]+(?:year|semester|sem)\b`),
}

var yearWords = map[string]string{
	"first": "1", "second": "2", "third": "3", "fourth": "4", "final": "4",
}

// Extractor extracts lead fields from user messages.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns a partial lead record holding whatever fields the input
// mentions. The SessionId is left empty; the caller owns session identity.
// An input with no recognizable details yields an empty record.
func (e *Extractor) Extract(input string) *core.LeadRecord {
	return &core.LeadRecord{
		Name:               extractName(input),
		RegistrationNumber: extractRegistration(input),
		Phone:              extractPhone(input),
		Email:              extractEmail(input),
		Department:         extractDepartment(input),
		Year:               extractYear(input),
	}
}

func extractName(input string) string {
	for _, pattern := range namePatterns {
		match := pattern.FindStringSubmatch(input)
		if match == nil {
			continue
		}
		name := trimNameCapture(match[1])
		if name != "" {
			return name
		}
	}
	return ""
}

// trimNameCapture cuts the capture at the first stop word and title-cases
// the remainder. Returns "" when nothing name-like survives.
func trimNameCapture(capture string) string {
	words := strings.Fields(capture)
	if len(words) == 0 || nameRejectWords[strings.ToLower(words[0])] {
		return ""
	}
	kept := make([]string, 0, maxNameWords)
	for _, word := range words {
		if nameStopWords[strings.ToLower(word)] {
			break
		}
		kept = append(kept, titleWord(word))
		if len(kept) == maxNameWords {
			break
		}
	}
	return strings.Join(kept, " ")
}

func extractRegistration(input string) string {
	for _, pattern := range regPatterns {
		match := pattern.FindStringSubmatch(input)
		if match == nil {
			continue
		}
		// A registration number has at least one digit; this rejects
		// captures like "and" from "I forgot my reg number and ...".
		if !strings.ContainsAny(match[1], "0123456789") {
			continue
		}
		return strings.ToUpper(match[1])
	}
	return ""
}

func extractPhone(input string) string {
	for _, pattern := range phonePatterns {
		match := pattern.FindStringSubmatch(input)
		if match == nil {
			continue
		}
		phone := normalizePhone(match[1])
		digits := strings.TrimPrefix(phone, "+")
		if len(digits) >= minPhoneDigits {
			return phone
		}
	}
	return ""
}

// normalizePhone strips separators, keeping digits and a leading plus.
func normalizePhone(raw string) string {
	var b strings.Builder
	for i, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func extractEmail(input string) string {
	match := emailPattern.FindString(input)
	return strings.ToLower(match)
}

func extractDepartment(input string) string {
	for _, pattern := range departmentPatterns {
		match := pattern.FindStringSubmatch(input)
		if match == nil {
			continue
		}
		dept := canonicalDepartment(match[1])
		if dept != "" {
			return dept
		}
	}
	if match := departmentVocab.FindString(input); match != "" {
		return canonicalDepartment(match)
	}
	return ""
}

// departmentRejectWords disqualify a capture: "which department offers AI?"
// names no department.
var departmentRejectWords = map[string]bool{
	"which": true, "what": true, "that": true, "this": true, "your": true,
	"any": true, "every": true, "some": true, "no": true, "each": true,
	"other": true, "another": true,
}

// canonicalDepartment strips leading filler words and normalizes casing:
// acronyms go uppercase, everything else is title-cased.
func canonicalDepartment(capture string) string {
	words := strings.Fields(strings.ToLower(capture))
	for len(words) > 0 {
		w := words[0]
		if w == "the" || w == "a" || w == "an" || w == "my" || w == "in" || w == "at" || w == "of" {
			words = words[1:]
			continue
		}
		break
	}
	if len(words) == 0 || departmentRejectWords[words[0]] {
		return ""
	}
	for i, word := range words {
		if acronymDepartments[word] {
			words[i] = strings.ToUpper(word)
		} else {
			words[i] = titleWord(word)
		}
	}
	return strings.Join(words, " ")
}

func extractYear(input string) string {
	for _, pattern := range yearPatterns {
		match := pattern.FindStringSubmatch(input)
		if match == nil {
			continue
		}
		captured := strings.ToLower(match[1])
		if year, ok := yearWords[captured]; ok {
			return year
		}
		return captured
	}
	return ""
}

// titleWord uppercases the first letter of a word, lowercasing the rest.
func titleWord(word string) string {
	if word == "" {
		return ""
	}
	lower := strings.ToLower(word)
	return strings.ToUpper(lower[:1]) + lower[1:]
}

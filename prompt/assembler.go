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


// Package prompt assembles the message sequence sent to the chat model:
// a system message carrying the persona and retrieved context, followed by
// a bounded window of conversation history, followed by the current query.
//
// The assembled prompt never exceeds the character budget. When the budget
// is tight, the oldest history turns are dropped first, then the
// lowest-ranked context chunks. The persona and the current query are never
// dropped.
package prompt

import (
	"log/slog"
	"strings"

	"github.com/poiesic/campusbot/ai"
	"github.com/poiesic/campusbot/core"
)

const (
	// DefaultCharBudget bounds the total character count of the assembled
	// prompt. Roughly 3000 tokens at 4 chars/token, well inside the chat
	// model's context window.
	DefaultCharBudget = 12000

	// DefaultHistoryWindow is the maximum number of past turns included.
	DefaultHistoryWindow = 10

	contextHeader = "Reference information:"
)

// Assembler builds chat completion requests.
type Assembler struct {
	persona       string
	charBudget    int
	historyWindow int
	logger        *slog.Logger
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithPersona overrides the default system persona.
func WithPersona(persona string) Option {
	return func(a *Assembler) {
		a.persona = persona
	}
}

// WithCharBudget overrides the default character budget.
// Non-positive values are ignored.
func WithCharBudget(budget int) Option {
	return func(a *Assembler) {
		if budget > 0 {
			a.charBudget = budget
		}
	}
}

// WithHistoryWindow overrides the number of past turns included.
// Negative values are ignored.
func WithHistoryWindow(window int) Option {
	return func(a *Assembler) {
		if window >= 0 {
			a.historyWindow = window
		}
	}
}

// NewAssembler creates an Assembler with the default persona and limits.
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{
		persona:       DefaultPersona,
		charBudget:    DefaultCharBudget,
		historyWindow: DefaultHistoryWindow,
		logger:        slog.Default().With("component", "prompt-assembler"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble builds the message sequence for one query.
//
// chunks are expected ranked best-first, as returned by retrieval. history is
// ordered oldest-first and is windowed to the most recent turns before budget
// trimming.
func (a *Assembler) Assemble(chunks []*core.ScoredChunk, history []core.Turn, query string) []ai.Message {
	if len(history) > a.historyWindow {
		history = history[len(history)-a.historyWindow:]
	}

	// Budget for the fixed parts first: persona, context header, query.
	used := len(a.persona) + len(query)

	// History costs its contents; chunks cost contents plus the header once.
	history, used = a.trimHistory(history, chunks, used)
	chunks = a.trimChunks(chunks, used)

	messages := make([]ai.Message, 0, len(history)+2)
	messages = append(messages, ai.SystemMessage(a.systemContent(chunks)))
	for _, turn := range history {
		switch turn.Speaker {
		case core.SpeakerAssistant:
			messages = append(messages, ai.AssistantMessage(turn.Contents))
		default:
			messages = append(messages, ai.UserMessage(turn.Contents))
		}
	}
	messages = append(messages, ai.UserMessage(query))
	return messages
}

// trimHistory drops the oldest turns until history plus the untrimmed chunks
// fit the budget. It returns the kept turns and the budget consumed so far
// (fixed parts plus kept history).
func (a *Assembler) trimHistory(history []core.Turn, chunks []*core.ScoredChunk, used int) ([]core.Turn, int) {
	chunkCost := 0
	if len(chunks) > 0 {
		chunkCost = len(contextHeader) + 2
		for _, sc := range chunks {
			chunkCost += len(sc.Chunk.Contents) + 1
		}
	}

	historyCost := 0
	for _, turn := range history {
		historyCost += len(turn.Contents)
	}

	dropped := 0
	for len(history) > 0 && used+historyCost+chunkCost > a.charBudget {
		historyCost -= len(history[0].Contents)
		history = history[1:]
		dropped++
	}
	if dropped > 0 {
		a.logger.Debug("dropped history turns to fit budget", "dropped", dropped)
	}
	return history, used + historyCost
}

// trimChunks drops the lowest-ranked chunks until the remainder fits the
// budget. Called after history trimming, so dropping here is the last resort.
func (a *Assembler) trimChunks(chunks []*core.ScoredChunk, used int) []*core.ScoredChunk {
	if len(chunks) == 0 {
		return chunks
	}

	cost := len(contextHeader) + 2
	kept := 0
	for _, sc := range chunks {
		next := cost + len(sc.Chunk.Contents) + 1
		if used+next > a.charBudget {
			break
		}
		cost = next
		kept++
	}
	if kept < len(chunks) {
		a.logger.Debug("dropped context chunks to fit budget", "dropped", len(chunks)-kept)
	}
	return chunks[:kept]
}

// systemContent joins the persona with the retrieved context block.
func (a *Assembler) systemContent(chunks []*core.ScoredChunk) string {
	if len(chunks) == 0 {
		return a.persona
	}

	var b strings.Builder
	b.WriteString(a.persona)
	b.WriteString("\n\n")
	b.WriteString(contextHeader)
	for _, sc := range chunks {
		b.WriteString("\n")
		b.WriteString(sc.Chunk.Contents)
	}
	return b.String()
}

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


// Package chat runs the conversational session: it routes each user message
// to a document collection, retrieves context, assembles a prompt, and
// generates a reply, while silently accumulating lead details mentioned in
// the conversation. The lead is persisted once, when the session ends.
package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/campusbot/ai"
	"github.com/poiesic/campusbot/core"
	"github.com/poiesic/campusbot/leads"
	"github.com/poiesic/campusbot/prompt"
	"github.com/poiesic/campusbot/retrieval"
	"github.com/poiesic/campusbot/router"
	"github.com/poiesic/campusbot/storage"
)

// State tracks where a session is in its lifecycle.
type State int

const (
	StateGreeting State = iota + 1
	StateAwaitingInput
	StateProcessing
	StateAdminView
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateGreeting:
		return "greeting"
	case StateAwaitingInput:
		return "awaiting_input"
	case StateProcessing:
		return "processing"
	case StateAdminView:
		return "admin_view"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// FallbackMessage is returned when the chat service cannot be reached.
const FallbackMessage = "I'm having trouble connecting to the AI service. Please try again later."

const (
	defaultMaxAttempts = 2
	defaultRetryDelay  = 500 * time.Millisecond
)

// Session is a single conversation with one user. Not safe for concurrent
// use; each console session owns exactly one goroutine.
type Session struct {
	id        string
	state     State
	history   []core.Turn
	lead      core.LeadRecord
	router    *router.Router
	retriever *retrieval.Retriever
	assembler *prompt.Assembler
	generator ai.ResponseGenerator
	extractor *leads.Extractor
	leadRepo  storage.LeadRepository

	maxAttempts int
	retryDelay  time.Duration
	transcript  io.Writer
	logger      *slog.Logger
}

// Option configures a Session.
type Option func(*Session) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithSessionID overrides the generated session ID.
func WithSessionID(id string) Option {
	return func(s *Session) error {
		if id != "" {
			s.id = id
		}
		return nil
	}
}

// WithTranscript logs every question/answer pair to the writer.
func WithTranscript(w io.Writer) Option {
	return func(s *Session) error {
		s.transcript = w
		return nil
	}
}

// WithMaxAttempts sets how many times a failed completion is attempted.
// Default is 2: the original call plus one retry.
func WithMaxAttempts(attempts int) Option {
	return func(s *Session) error {
		if attempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		s.maxAttempts = attempts
		return nil
	}
}

// WithRetryDelay sets the base delay between completion attempts.
func WithRetryDelay(delay time.Duration) Option {
	return func(s *Session) error {
		if delay > 0 {
			s.retryDelay = delay
		}
		return nil
	}
}

// NewSession creates a session with a fresh UUID.
func NewSession(
	rt *router.Router,
	retriever *retrieval.Retriever,
	assembler *prompt.Assembler,
	generator ai.ResponseGenerator,
	extractor *leads.Extractor,
	leadRepo storage.LeadRepository,
	opts ...Option,
) (*Session, error) {
	if rt == nil {
		return nil, ErrRouterRequired
	}
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	if assembler == nil {
		return nil, ErrAssemblerRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}
	if extractor == nil {
		return nil, ErrExtractorRequired
	}
	if leadRepo == nil {
		return nil, ErrLeadRepositoryRequired
	}

	s := &Session{
		id:          uuid.NewString(),
		state:       StateGreeting,
		router:      rt,
		retriever:   retriever,
		assembler:   assembler,
		generator:   generator,
		extractor:   extractor,
		leadRepo:    leadRepo,
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.logger = s.logger.With("component", "chat-session", "session", s.id)

	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Lead returns a copy of the lead accumulated so far.
func (s *Session) Lead() core.LeadRecord {
	return s.lead
}

// History returns a copy of the conversation history.
func (s *Session) History() []core.Turn {
	out := make([]core.Turn, len(s.history))
	copy(out, s.history)
	return out
}

// Run drives the console loop: greet, read lines, answer, until the user
// exits or input ends. EOF is treated like "exit" so the lead still persists.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, prompt.WelcomeMessage)
	fmt.Fprintln(out, "(Type 'exit' to end the conversation)")
	fmt.Fprintln(out)
	s.state = StateAwaitingInput

	scanner := bufio.NewScanner(in)
	for s.state != StateTerminated {
		fmt.Fprint(out, "USER: ")

		if !scanner.Scan() {
			s.persistLead(ctx)
			s.state = StateTerminated
			fmt.Fprintln(out)
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		reply, err := s.HandleInput(ctx, input)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nASSISTANT: %s\n\n", reply)
	}

	return scanner.Err()
}

// HandleInput processes one user message and returns the assistant's reply.
// The commands "exit", "quit" and "admin" are intercepted before the message
// reaches the model; everything else flows through extract, route, retrieve,
// assemble, generate.
func (s *Session) HandleInput(ctx context.Context, input string) (string, error) {
	if s.state == StateTerminated {
		return "", ErrSessionTerminated
	}

	trimmed := strings.TrimSpace(input)
	switch strings.ToLower(trimmed) {
	case "exit", "quit":
		s.persistLead(ctx)
		s.state = StateTerminated
		return prompt.FarewellMessage, nil
	case "admin":
		s.state = StateAdminView
		view := s.adminView(ctx)
		s.state = StateAwaitingInput
		return view, nil
	}

	s.state = StateProcessing
	defer func() {
		if s.state == StateProcessing {
			s.state = StateAwaitingInput
		}
	}()

	s.captureLead(trimmed)

	collection := s.router.Route(trimmed)
	var chunks []*core.ScoredChunk
	if collection != core.CollectionNone {
		retrieved, err := s.retriever.Retrieve(ctx, collection, trimmed)
		if err != nil {
			// Answer without context rather than failing the turn.
			s.logger.Warn("retrieval failed, answering without context", "collection", collection, "err", err)
		} else {
			chunks = retrieved
		}
	}

	messages := s.assembler.Assemble(chunks, s.history, trimmed)

	var reply string
	err := RetryWithBackoff(ctx, func() error {
		generated, genErr := s.generator.Generate(ctx, messages)
		if genErr != nil {
			return genErr
		}
		reply = generated
		return nil
	}, s.maxAttempts, s.retryDelay)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		s.logger.Error("response generation failed", "err", err)
		reply = FallbackMessage
	}

	s.history = append(s.history,
		core.Turn{Speaker: core.SpeakerUser, Contents: trimmed, Timestamp: time.Now().UTC()},
		core.Turn{Speaker: core.SpeakerAssistant, Contents: reply, Timestamp: time.Now().UTC()},
	)
	s.logTranscript(trimmed, reply)

	return reply, nil
}

// captureLead extracts any contact details from the message and folds them
// into the session lead. Existing fields are never overwritten.
func (s *Session) captureLead(input string) {
	extracted := s.extractor.Extract(input)
	if extracted.IsEmpty() {
		return
	}
	before := s.lead
	s.lead.Merge(extracted)
	if s.lead != before {
		s.logger.Debug("captured lead details")
	}
}

// persistLead writes the accumulated lead once, at session end. Empty leads
// are skipped and storage errors are logged without failing the farewell.
func (s *Session) persistLead(ctx context.Context) {
	if s.lead.IsEmpty() {
		s.logger.Debug("no lead details captured, skipping persist")
		return
	}

	s.lead.SessionId = s.id
	if err := s.leadRepo.PutLead(ctx, &s.lead); err != nil {
		s.logger.Warn("failed to persist lead", "err", err)
		return
	}
	s.logger.Info("lead persisted", "session", s.id)
}

// adminView lists every collected lead.
func (s *Session) adminView(ctx context.Context) string {
	records, err := s.leadRepo.ListLeads(ctx)
	if err != nil {
		s.logger.Warn("failed to list leads", "err", err)
		return "Unable to load collected leads right now."
	}
	if len(records) == 0 {
		return "No leads collected yet."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Collected leads (%d):\n", len(records))
	for _, lead := range records {
		fmt.Fprintf(&b, "- session=%s name=%q reg=%q phone=%q email=%q dept=%q year=%q\n",
			lead.SessionId, lead.Name, lead.RegistrationNumber, lead.Phone,
			lead.Email, lead.Department, lead.Year)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// logTranscript appends a timestamped question/answer pair to the transcript
// writer, if one is configured.
func (s *Session) logTranscript(question, answer string) {
	if s.transcript == nil {
		return
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	entry := fmt.Sprintf("[%s] Q: %s\nA: %s\n%s\n", timestamp, question, answer, strings.Repeat("=", 50))
	if _, err := io.WriteString(s.transcript, entry); err != nil {
		s.logger.Warn("failed to write transcript", "err", err)
	}
}

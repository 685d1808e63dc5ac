package prompt

import (
	"strings"
	"testing"

	"github.com/poiesic/campusbot/ai"
	"github.com/poiesic/campusbot/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scored(contents ...string) []*core.ScoredChunk {
	chunks := make([]*core.ScoredChunk, 0, len(contents))
	score := float32(1.0)
	for _, c := range contents {
		chunks = append(chunks, &core.ScoredChunk{
			Chunk: &core.Chunk{Contents: c},
			Score: score,
		})
		score -= 0.1
	}
	return chunks
}

func totalChars(messages []ai.Message) int {
	total := 0
	for _, m := range messages {
		total += len(m.Content)
	}
	return total
}

func TestAssemble_Shape(t *testing.T) {
	a := NewAssembler()

	history := []core.Turn{
		{Speaker: core.SpeakerUser, Contents: "hello"},
		{Speaker: core.SpeakerAssistant, Contents: "hi, how can I help?"},
	}

	messages := a.Assemble(scored("Bus 12 leaves at 4pm"), history, "when is the next bus?")
	require.Len(t, messages, 4)

	assert.Equal(t, ai.RoleSystem, messages[0].Role)
	assert.Contains(t, messages[0].Content, DefaultPersona)
	assert.Contains(t, messages[0].Content, "Bus 12 leaves at 4pm")

	assert.Equal(t, ai.RoleUser, messages[1].Role)
	assert.Equal(t, "hello", messages[1].Content)
	assert.Equal(t, ai.RoleAssistant, messages[2].Role)

	assert.Equal(t, ai.RoleUser, messages[3].Role)
	assert.Equal(t, "when is the next bus?", messages[3].Content)
}

func TestAssemble_NoContext(t *testing.T) {
	a := NewAssembler()

	messages := a.Assemble(nil, nil, "tell me about the campus")
	require.Len(t, messages, 2)

	assert.Equal(t, DefaultPersona, messages[0].Content)
	assert.Equal(t, "tell me about the campus", messages[1].Content)
}

func TestAssemble_HistoryWindow(t *testing.T) {
	a := NewAssembler(WithHistoryWindow(2))

	history := []core.Turn{
		{Speaker: core.SpeakerUser, Contents: "first"},
		{Speaker: core.SpeakerAssistant, Contents: "second"},
		{Speaker: core.SpeakerUser, Contents: "third"},
	}

	messages := a.Assemble(nil, history, "query")
	require.Len(t, messages, 4)
	assert.Equal(t, "second", messages[1].Content)
	assert.Equal(t, "third", messages[2].Content)
}

func TestAssemble_DropsOldestHistoryFirst(t *testing.T) {
	persona := "persona"
	a := NewAssembler(WithPersona(persona), WithCharBudget(len(persona)+len("query")+12))

	history := []core.Turn{
		{Speaker: core.SpeakerUser, Contents: "0123456789"}, // 10 chars, must go
		{Speaker: core.SpeakerAssistant, Contents: "keep me"},
	}

	messages := a.Assemble(nil, history, "query")
	require.Len(t, messages, 3)
	assert.Equal(t, "keep me", messages[1].Content)
	assert.Equal(t, "query", messages[2].Content)
}

func TestAssemble_DropsLowestRankedChunksAfterHistory(t *testing.T) {
	persona := "persona"
	chunks := scored("best chunk", "worse chunk")
	budget := len(persona) + len("query") + len(contextHeader) + 2 + len("best chunk") + 1
	a := NewAssembler(WithPersona(persona), WithCharBudget(budget))

	messages := a.Assemble(chunks, nil, "query")
	require.Len(t, messages, 2)
	assert.Contains(t, messages[0].Content, "best chunk")
	assert.NotContains(t, messages[0].Content, "worse chunk")
}

func TestAssemble_NeverExceedsBudget(t *testing.T) {
	budget := 300
	a := NewAssembler(WithPersona("short persona"), WithCharBudget(budget))

	long := strings.Repeat("x", 120)
	history := []core.Turn{
		{Speaker: core.SpeakerUser, Contents: long},
		{Speaker: core.SpeakerAssistant, Contents: long},
		{Speaker: core.SpeakerUser, Contents: long},
	}

	messages := a.Assemble(scored(long, long, long), history, "the query itself")
	assert.LessOrEqual(t, totalChars(messages), budget)

	// Query always survives.
	assert.Equal(t, "the query itself", messages[len(messages)-1].Content)
}

func TestAssemble_QueryAndPersonaAlwaysPresent(t *testing.T) {
	// Budget smaller than persona+query: everything else must be dropped,
	// but the fixed parts still ship.
	a := NewAssembler(WithPersona("persona"), WithCharBudget(1))

	messages := a.Assemble(scored("chunk"), []core.Turn{{Speaker: core.SpeakerUser, Contents: "old"}}, "query")
	require.Len(t, messages, 2)
	assert.Equal(t, "persona", messages[0].Content)
	assert.Equal(t, "query", messages[1].Content)
}

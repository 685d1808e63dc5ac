package campusbot

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/poiesic/campusbot/ai"
	"github.com/poiesic/campusbot/ai/mock"
	"github.com/poiesic/campusbot/chat"
	"github.com/poiesic/campusbot/core"
	"github.com/poiesic/campusbot/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAssistant(t *testing.T) *Assistant {
	t.Helper()

	assistant, err := NewAssistant(
		filepath.Join(t.TempDir(), "campusbot-db"),
		WithProvider(mock.NewMockProvider()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { assistant.Close() })

	return assistant
}

func TestAssistant_IngestAndChat(t *testing.T) {
	assistant := newTestAssistant(t)
	ctx := context.Background()

	pipeline, err := assistant.NewIngestionPipeline()
	require.NoError(t, err)
	defer pipeline.Release()

	count, err := pipeline.IngestText(ctx, core.CollectionBusDetails, "buses.txt",
		"Bus 12 leaves for Tambaram at 4pm.")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	session, err := assistant.NewSession()
	require.NoError(t, err)

	reply, err := session.HandleInput(ctx, "when does the bus leave?")
	require.NoError(t, err)
	assert.NotEmpty(t, reply)
}

func TestAssistant_LeadFlowsThroughSharedStore(t *testing.T) {
	assistant := newTestAssistant(t)
	ctx := context.Background()

	session, err := assistant.NewSession(chat.WithSessionID("session-a"))
	require.NoError(t, err)

	_, err = session.HandleInput(ctx, "my name is Priya, reg no 40110234")
	require.NoError(t, err)

	reply, err := session.HandleInput(ctx, "exit")
	require.NoError(t, err)
	assert.Equal(t, prompt.FarewellMessage, reply)

	lead, err := assistant.LeadRepository().GetLead(ctx, "session-a")
	require.NoError(t, err)
	assert.Equal(t, "Priya", lead.Name)
	assert.Equal(t, "40110234", lead.RegistrationNumber)
}

func TestAssistant_PersonaOverride(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	assistant, err := NewAssistant(
		filepath.Join(t.TempDir(), "campusbot-db"),
		WithProvider(provider),
		WithPersona("You are a terse test persona."),
	)
	require.NoError(t, err)
	t.Cleanup(func() { assistant.Close() })

	var system string
	provider.GetMockGenerator().GenerateFunc = func(ctx context.Context, messages []ai.Message) (string, error) {
		system = messages[0].Content
		return "ok", nil
	}

	session, err := assistant.NewSession()
	require.NoError(t, err)

	_, err = session.HandleInput(context.Background(), "hello there")
	require.NoError(t, err)
	assert.Equal(t, "You are a terse test persona.", system)
}

func TestAssistant_Close(t *testing.T) {
	assistant, err := NewAssistant(
		filepath.Join(t.TempDir(), "campusbot-db"),
		WithProvider(mock.NewMockProvider()),
	)
	require.NoError(t, err)

	require.NoError(t, assistant.Close())
}

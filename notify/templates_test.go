package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxbench/voxbench/messages"
	"go.uber.org/zap"
)

func newTestNotifier(t *testing.T) *Notifier {
	t.Helper()

	messageProvider, err := messages.NewMessageProvider()
	require.NoError(t, err)

	n, err := NewNotifier(NotifierOptions{
		ParentLogger: zap.NewNop(),
		Messages:     messageProvider,
		WebhookID:    "1",
		WebhookToken: "t",
	})
	require.NoError(t, err)

	return n
}

func TestRenderSweepStarted(t *testing.T) {
	n := newTestNotifier(t)

	output, err := n.renderMessage("sweep_started", MessageContext{
		SweepStarted: &MessageContextSweepStarted{
			Models:       []string{"tiny.en", "large-v3"},
			DatasetCount: 9,
		},
	})
	require.NoError(t, err)

	require.Len(t, output.Embeds, 1)
	assert.Equal(t, "Benchmark sweep started", output.Embeds[0].Title)
	assert.Contains(t, output.Embeds[0].Description, "2 models")
	assert.Contains(t, output.Embeds[0].Description, "9 datasets")
	require.Len(t, output.Embeds[0].Fields, 1)
	assert.Contains(t, output.Embeds[0].Fields[0].Value, "`tiny.en`")
}

func TestRenderModelScored(t *testing.T) {
	n := newTestNotifier(t)

	output, err := n.renderMessage("model_scored", MessageContext{
		ModelScored: &MessageContextModelScored{ModelID: "tiny.en"},
	})
	require.NoError(t, err)

	require.Len(t, output.Embeds, 1)
	assert.Equal(t, "Model scored", output.Embeds[0].Title)
	assert.Contains(t, output.Embeds[0].Description, "`tiny.en`")
}

func TestRenderModelScoredFailure(t *testing.T) {
	n := newTestNotifier(t)

	output, err := n.renderMessage("model_scored", MessageContext{
		ModelScored: &MessageContextModelScored{
			ModelID: "tiny.en",
			Error:   "no manifests found",
		},
	})
	require.NoError(t, err)

	require.Len(t, output.Embeds, 1)
	assert.Equal(t, "Scoring failed", output.Embeds[0].Title)
	assert.Contains(t, output.Embeds[0].Description, "no manifests found")
}

func TestRenderSweepFinished(t *testing.T) {
	n := newTestNotifier(t)

	output, err := n.renderMessage("sweep_finished", MessageContext{
		SweepFinished: &MessageContextSweepFinished{ModelCount: 7},
	})
	require.NoError(t, err)

	require.Len(t, output.Embeds, 1)
	assert.Contains(t, output.Embeds[0].Description, "7 models")
}

func TestRenderSweepFailed(t *testing.T) {
	n := newTestNotifier(t)

	output, err := n.renderMessage("sweep_failed", MessageContext{
		SweepFailed: &MessageContextSweepFailed{
			Error: "evaluating tiny.en on gigaspeech/test: exit status 1",
		},
	})
	require.NoError(t, err)

	require.Len(t, output.Embeds, 1)
	assert.Equal(t, "Benchmark sweep failed", output.Embeds[0].Title)
	assert.Contains(t, output.Embeds[0].Description, "gigaspeech/test")
}

func TestRenderUnknownMessage(t *testing.T) {
	n := newTestNotifier(t)

	_, err := n.renderMessage("nonexistent", MessageContext{})
	assert.Error(t, err)
}

package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

type MessageOutput struct {
	Content string                    `json:"content,omitempty"`
	Embeds  []*discordgo.MessageEmbed `json:"embeds,omitempty"`
}

type MessageContextSweepStarted struct {
	Models       []string `json:"models"`
	DatasetCount int      `json:"dataset_count"`
}
type MessageContextModelScored struct {
	ModelID string `json:"model_id"`
	Error   string `json:"error,omitempty"`
}
type MessageContextSweepFinished struct {
	ModelCount int `json:"model_count"`
}
type MessageContextSweepFailed struct {
	Error string `json:"error"`
}

type MessageContext struct {
	SweepStarted  *MessageContextSweepStarted  `json:"sweep_started,omitempty"`
	ModelScored   *MessageContextModelScored   `json:"model_scored,omitempty"`
	SweepFinished *MessageContextSweepFinished `json:"sweep_finished,omitempty"`
	SweepFailed   *MessageContextSweepFailed   `json:"sweep_failed,omitempty"`

	Timestamp string `json:"timestamp"`
}

func (n *Notifier) renderMessage(messageName string, data MessageContext) (*MessageOutput, error) {
	data.Timestamp = time.Now().UTC().Format(time.RFC3339)

	jsonOut, err := n.messages.ExecuteMessage(messageName, data)
	if err != nil {
		return nil, err
	}

	var output MessageOutput
	err = json.Unmarshal([]byte(jsonOut), &output)
	if err != nil {
		return nil, fmt.Errorf("unmarshaling output: %w", err)
	}

	return &output, nil
}

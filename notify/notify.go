// Package notify posts sweep progress to a Discord webhook, so
// multi-hour benchmark runs can be watched without tailing logs.
package notify

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/voxbench/voxbench/messages"
	"github.com/voxbench/voxbench/sweep"
	"github.com/voxbench/voxbench/utils"
	"go.uber.org/zap"
)

var DefaultAllowedMentions = &discordgo.MessageAllowedMentions{
	Parse: []discordgo.AllowedMentionType{},
}

type Notifier struct {
	log *zap.Logger

	discord  *discordgo.Session
	messages *messages.MessageProvider

	webhookID    string
	webhookToken string

	modelCount int
}

type NotifierOptions struct {
	ParentLogger *zap.Logger
	Messages     *messages.MessageProvider

	WebhookID    string
	WebhookToken string
}

func NewNotifier(options NotifierOptions) (*Notifier, error) {
	// webhook execution is unauthenticated beyond the token in the URL,
	// no bot token needed
	discord, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("creating discordgo instance: %w", err)
	}

	return &Notifier{
		log: options.ParentLogger.Named("notify"),

		discord:  discord,
		messages: options.Messages,

		webhookID:    options.WebhookID,
		webhookToken: options.WebhookToken,
	}, nil
}

func (n *Notifier) send(ctx context.Context, messageName string, data MessageContext) error {
	defer utils.PanicRecovery(n.log)

	output, err := n.renderMessage(messageName, data)
	if err != nil {
		return fmt.Errorf("rendering message: %w", err)
	}

	_, err = n.discord.WebhookExecute(n.webhookID, n.webhookToken, false, &discordgo.WebhookParams{
		Content:         output.Content,
		Embeds:          output.Embeds,
		AllowedMentions: DefaultAllowedMentions,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("executing webhook: %w", err)
	}

	return nil
}

func (n *Notifier) SweepStarted(ctx context.Context, models []string, datasets []sweep.DatasetSpec) error {
	n.modelCount = len(models)

	return n.send(ctx, "sweep_started", MessageContext{
		SweepStarted: &MessageContextSweepStarted{
			Models:       models,
			DatasetCount: len(datasets),
		},
	})
}

// JobFinished is intentionally quiet: a full sweep runs 63 jobs, and a
// webhook message per job is noise. Failures reach the channel through
// SweepFinished.
func (n *Notifier) JobFinished(ctx context.Context, job sweep.Job, jobErr error) error {
	return nil
}

func (n *Notifier) ModelScored(ctx context.Context, modelID string, scoreErr error) error {
	scored := &MessageContextModelScored{
		ModelID: modelID,
	}
	if scoreErr != nil {
		scored.Error = scoreErr.Error()
	}

	return n.send(ctx, "model_scored", MessageContext{
		ModelScored: scored,
	})
}

func (n *Notifier) SweepFinished(ctx context.Context, sweepErr error) error {
	if sweepErr != nil {
		return n.send(ctx, "sweep_failed", MessageContext{
			SweepFailed: &MessageContextSweepFailed{
				Error: sweepErr.Error(),
			},
		})
	}

	return n.send(ctx, "sweep_finished", MessageContext{
		SweepFinished: &MessageContextSweepFinished{
			ModelCount: n.modelCount,
		},
	})
}

package infrastructure

import (
	"context"
	"fmt"
	"time"

	"backendjobs/service"

	"github.com/bwmarrin/discordgo"
)

// Discord color constants
const (
	ColorInfo   = 0x5865F2 // Discord blurple
	ColorDanger = 0xED4245 // Red
)

// Discord embed limits
const (
	maxEmbedTitle       = 256
	maxEmbedDescription = 4096
	maxEmbedFieldValue  = 1024
	maxEmbedFields      = 25
)

type webhookExecutor interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordAlertPublisher mirrors alerts to a Discord channel through a webhook
type DiscordAlertPublisher struct {
	session   webhookExecutor
	webhookID string
	token     string
	now       func() time.Time
}

// NewDiscordAlertPublisher creates a publisher for the given webhook
func NewDiscordAlertPublisher(webhookID, token string) (*DiscordAlertPublisher, error) {
	// Webhook calls authenticate with the webhook token, no bot token needed
	session, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	return &DiscordAlertPublisher{
		session:   session,
		webhookID: webhookID,
		token:     token,
		now:       time.Now,
	}, nil
}

// Publish posts the alert as an embed
func (p *DiscordAlertPublisher) Publish(ctx context.Context, alert service.Alert) error {
	embed := BuildAlertEmbed(alert)
	embed.Timestamp = p.now().UTC().Format(time.RFC3339)

	_, err := p.session.WebhookExecute(p.webhookID, p.token, false, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to execute discord webhook: %w", err)
	}
	return nil
}

// BuildAlertEmbed renders an alert as a Discord embed, one inline field per detail
func BuildAlertEmbed(alert service.Alert) *discordgo.MessageEmbed {
	color := ColorInfo
	if alert.Severity == service.AlertSeverityError {
		color = ColorDanger
	}

	embed := &discordgo.MessageEmbed{
		Title:       truncate(alert.Title, maxEmbedTitle),
		Description: truncate(alert.Message, maxEmbedDescription),
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "backendjobs",
		},
	}

	for i, d := range alert.Details {
		if i == maxEmbedFields {
			break
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   d.Key,
			Value:  truncate(fmt.Sprint(d.Value), maxEmbedFieldValue),
			Inline: true,
		})
	}

	return embed
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

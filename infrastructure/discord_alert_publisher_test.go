package infrastructure

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"backendjobs/service"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWebhook struct {
	webhookID string
	token     string
	params    *discordgo.WebhookParams
	err       error
}

func (f *fakeWebhook) WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.webhookID = webhookID
	f.token = token
	f.params = data
	return nil, f.err
}

func TestBuildAlertEmbed(t *testing.T) {
	t.Run("error alert", func(t *testing.T) {
		alert := service.NewAlert(service.AlertPaymentEntryFailed, "Transaction failed for ISIN isin-a.",
			service.Detail("Case ID", "case-1"),
			service.Detail("Number of Entries", 2))

		embed := BuildAlertEmbed(alert)

		assert.Equal(t, service.AlertPaymentEntryFailed, embed.Title)
		assert.Equal(t, "Transaction failed for ISIN isin-a.", embed.Description)
		assert.Equal(t, ColorDanger, embed.Color)
		require.Len(t, embed.Fields, 2)
		assert.Equal(t, "Case ID", embed.Fields[0].Name)
		assert.Equal(t, "case-1", embed.Fields[0].Value)
		assert.Equal(t, "2", embed.Fields[1].Value)
		assert.True(t, embed.Fields[0].Inline)
	})

	t.Run("info alert", func(t *testing.T) {
		embed := BuildAlertEmbed(service.NewAlert(service.AlertCaseNotFound, "missing"))

		assert.Equal(t, ColorInfo, embed.Color)
		assert.Empty(t, embed.Fields)
	})

	t.Run("long values are truncated", func(t *testing.T) {
		long := strings.Repeat("x", 2000)
		embed := BuildAlertEmbed(service.NewAlert(service.AlertPaymentRunFailed, long, service.Detail("Error Details", long)))

		assert.Len(t, []rune(embed.Fields[0].Value), maxEmbedFieldValue)
		assert.True(t, strings.HasSuffix(embed.Fields[0].Value, "…"))
		assert.Equal(t, long, embed.Description)
	})
}

func TestDiscordAlertPublisher_Publish(t *testing.T) {
	webhook := &fakeWebhook{}
	publisher := &DiscordAlertPublisher{
		session:   webhook,
		webhookID: "123",
		token:     "token",
		now:       func() time.Time { return time.Date(2024, 7, 1, 2, 0, 0, 0, time.UTC) },
	}

	err := publisher.Publish(context.Background(), service.NewAlert(service.AlertCaseNotFound, "missing"))

	require.NoError(t, err)
	assert.Equal(t, "123", webhook.webhookID)
	assert.Equal(t, "token", webhook.token)
	require.Len(t, webhook.params.Embeds, 1)
	assert.Equal(t, "2024-07-01T02:00:00Z", webhook.params.Embeds[0].Timestamp)

	webhook.err = errors.New("rate limited")
	err = publisher.Publish(context.Background(), service.NewAlert(service.AlertCaseNotFound, "missing"))
	assert.ErrorContains(t, err, "rate limited")
}

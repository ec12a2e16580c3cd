package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/forest-sentry/deforestation-cli/internal/properties"
)

type DiscordMessage struct {
	Embeds []DiscordEmbed `json:"embeds"`
}

type DiscordEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
}

// SendRunFailure posts the failure of a change-detection run to the error
// webhook. A no-op when the webhook URL is not configured.
func SendRunFailure(errorMessage string) error {
	url := properties.DiscordErrorNotificationUrl()
	if url == "" {
		return nil
	}
	message := DiscordMessage{
		Embeds: []DiscordEmbed{
			{
				Title:       "🚨 Change detection failed",
				Description: fmt.Sprintf("The run aborted with: %s", errorMessage),
				Color:       16711680, // Red color
			},
		},
	}
	return post(url, message)
}

// SendRunSummary posts the area summary of a completed run to the success
// webhook. A no-op when the webhook URL is not configured.
func SendRunSummary(summary string) error {
	url := properties.DiscordSuccessNotificationUrl()
	if url == "" {
		return nil
	}
	message := DiscordMessage{
		Embeds: []DiscordEmbed{
			{
				Title:       "🌳 Change detection finished",
				Description: summary,
				Color:       65280, // Green color
			},
		},
	}
	return post(url, message)
}

func post(url string, message DiscordMessage) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to send Discord notification, status code: %d", resp.StatusCode)
	}

	return nil
}

// Package telegram is a thin wrapper over the bot API. Update parsing lives
// at the web boundary and command handling in the controller; this package
// only sends.
package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Client interface {
	SendMessage(chatID int64, text string) error
	SetWebhook(url string) error
}

type client struct {
	bot *tgbotapi.BotAPI
}

func New(token string) (Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("error creating telegram bot: %w", err)
	}
	return &client{bot: bot}, nil
}

// NewForTest points the bot at a fake API server.
func NewForTest(token, apiEndpoint string) (Client, error) {
	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, apiEndpoint)
	if err != nil {
		return nil, fmt.Errorf("error creating telegram bot: %w", err)
	}
	return &client{bot: bot}, nil
}

func (c *client) SendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("error sending telegram message to %d: %w", chatID, err)
	}
	return nil
}

func (c *client) SetWebhook(url string) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("error building webhook config: %w", err)
	}
	if _, err := c.bot.Request(wh); err != nil {
		return fmt.Errorf("error setting telegram webhook: %w", err)
	}
	return nil
}

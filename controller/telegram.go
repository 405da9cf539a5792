package controller

import (
	"context"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// HandleTelegramUpdate processes one webhook update. Only the /start command
// matters: it registers (or refreshes) the user and sends a greeting. Every
// other update is ignored.
func (c *controller) HandleTelegramUpdate(ctx context.Context, update *tgbotapi.Update) error {
	msg := update.Message
	if msg == nil || msg.From == nil || !strings.HasPrefix(msg.Text, "/start") {
		return nil
	}

	from := msg.From
	user, err := c.db.UpdateUserProfile(ctx, from.ID, from.UserName, from.FirstName, from.LastName)
	if err != nil {
		return fmt.Errorf("error registering telegram user %d: %w", from.ID, err)
	}
	log.Printf("telegram user registered: %s (%d)", user.DisplayName(), user.TelegramID)

	greeting := fmt.Sprintf("Hi, %s! Welcome to the player voting bot.", user.DisplayName())
	if err := c.telegram.SendMessage(from.ID, greeting); err != nil {
		// The user row is already saved, a failed greeting is not fatal.
		log.Printf("error sending greeting to %d: %v", from.ID, err)
	}
	return nil
}

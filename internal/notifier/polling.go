package notifier

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// CommandHandler is called with the text of a received command and returns
// the reply. An empty reply sends nothing.
type CommandHandler func(command string) string

// StartPolling begins long-polling for Telegram commands. Blocks until ctx is cancelled.
// Only messages from the configured chat are handled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := t.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			t.bot.StopReceivingUpdates()
			log.Println("[INFO] Telegram polling stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			msg := update.Message
			if msg == nil || msg.Chat == nil || msg.Chat.ID != t.chatID {
				continue
			}
			log.Printf("[INFO] received command: %s", msg.Text)

			go func(chatID int64, text string) {
				reply := handler(text)
				if reply == "" {
					return
				}
				if err := t.sendTo(chatID, reply); err != nil {
					log.Printf("[ERROR] reply to command: %v", err)
				}
			}(msg.Chat.ID, msg.Text)
		}
	}
}

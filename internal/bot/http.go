package bot

import (
	"context"
	"encoding/json"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// WebhookPath is where Telegram posts updates in webhook mode
const WebhookPath = "/telegram-webhook"

// RegisterWebhook registers the webhook endpoint on mux. Updates are handled
// in the background under ctx so Telegram gets a quick answer.
func (b *Bot) RegisterWebhook(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc(WebhookPath, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var update tgbotapi.Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			b.logger.Warn("Error decoding webhook update", zap.Error(err))
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		go b.HandleUpdate(ctx, update)

		w.WriteHeader(http.StatusOK)
	})
}

package bot

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"booklib/internal/models"
	"booklib/internal/report"
)

// handleAddConversation collects title, author and year as text.
// Genre and read status come from keyboards, see callbacks.go.
func (b *Bot) handleAddConversation(message *tgbotapi.Message, state *ConversationState) {
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)

	switch state.Step {
	case 1: // Waiting for title
		if text == "" {
			b.reply(chatID, "The title cannot be empty. Please enter the book title:")
			return
		}
		state.Data["title"] = text
		state.Step = 2
		b.reply(chatID, "Please enter the author:")

	case 2: // Waiting for author
		if text == "" {
			b.reply(chatID, "The author cannot be empty. Please enter the author:")
			return
		}
		state.Data["author"] = text
		state.Step = 3

		currentYear := b.now().Year()
		msg := tgbotapi.NewMessage(chatID,
			fmt.Sprintf("Please enter the publication year (%d-%d):", models.MinPublicationYear, currentYear))
		msg.ReplyMarkup = yearKeyboard(currentYear)
		b.sendMessage(msg)

	case 3: // Waiting for year
		year, err := strconv.Atoi(text)
		currentYear := b.now().Year()
		if err != nil || year < models.MinPublicationYear || year > currentYear {
			b.reply(chatID, fmt.Sprintf("❌ Invalid year. Please enter a year between %d and %d",
				models.MinPublicationYear, currentYear))
			return
		}
		b.askGenre(chatID, state, year)

	default:
		b.reply(chatID, "Please use the buttons above to continue.")
	}
}

// askGenre stores the year and shows the genre keyboard
func (b *Bot) askGenre(chatID int64, state *ConversationState, year int) {
	state.Data["year"] = year
	state.Step = 4

	msg := tgbotapi.NewMessage(chatID, "📖 Select a genre:")
	msg.ReplyMarkup = genreKeyboard()
	b.sendMessage(msg)
}

// handleSearchConversation runs the search once the term arrives
func (b *Bot) handleSearchConversation(message *tgbotapi.Message, state *ConversationState) {
	chatID := message.Chat.ID

	field, ok := state.Data["field"].(models.SearchField)
	if !ok || state.Step != 2 {
		b.reply(chatID, "Please choose a search field from the buttons above.")
		return
	}

	books := b.catalog.Search(strings.TrimSpace(message.Text), field)

	var text strings.Builder
	text.WriteString(report.FoundMessage(len(books)))
	if len(books) > 0 {
		text.WriteString("\n\n")
		writeBookLines(&text, books)
	}
	b.reply(chatID, text.String())

	state.Step = stepDone
}

package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"booklib/internal/catalog"
	"booklib/internal/models"
	"booklib/internal/report"
)

// handleStart shows welcome message and available commands
func (b *Bot) handleStart(message *tgbotapi.Message) {
	text := `Welcome to your personal library! 📚

Available commands:
/list - Show all books
/add - Add a new book
/remove - Remove a book (or /remove N)
/search - Search by title, author or genre
/stats - View library statistics`

	b.reply(message.Chat.ID, text)
}

// handleList shows every book with its position
func (b *Bot) handleList(message *tgbotapi.Message) {
	books := b.catalog.All()
	if len(books) == 0 {
		b.reply(message.Chat.ID, report.EmptyLibraryMessage)
		return
	}

	var text strings.Builder
	text.WriteString(fmt.Sprintf("📚 Your library (%d books):\n\n", len(books)))
	writeBookLines(&text, books)
	b.reply(message.Chat.ID, text.String())
}

// handleAddStart initiates the add book conversation
func (b *Bot) handleAddStart(message *tgbotapi.Message) {
	b.states[message.From.ID] = &ConversationState{
		Command: commandAdd,
		Step:    1,
		Data:    make(map[string]interface{}),
	}

	b.reply(message.Chat.ID, "Please enter the book title:")
}

// handleRemoveStart removes "/remove N" directly, otherwise offers a keyboard
func (b *Bot) handleRemoveStart(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if arg := strings.TrimSpace(message.CommandArguments()); arg != "" {
		position, err := strconv.Atoi(arg)
		if err != nil {
			b.reply(chatID, "Usage: /remove N, where N is the book number from /list")
			return
		}
		b.removeBook(ctx, chatID, position-1)
		return
	}

	books := b.catalog.All()
	if len(books) == 0 {
		b.reply(chatID, report.EmptyLibraryMessage)
		return
	}

	b.states[message.From.ID] = &ConversationState{
		Command: commandRemove,
		Step:    1,
		Data:    map[string]interface{}{"books": books},
	}

	msg := tgbotapi.NewMessage(chatID, "🗑 Select a book to remove:")
	msg.ReplyMarkup = removeKeyboard(books)
	b.sendMessage(msg)
}

// handleSearchStart asks which field to search
func (b *Bot) handleSearchStart(message *tgbotapi.Message) {
	b.states[message.From.ID] = &ConversationState{
		Command: commandSearch,
		Step:    1,
		Data:    make(map[string]interface{}),
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, "🔍 Search by:")
	msg.ReplyMarkup = fieldKeyboard()
	b.sendMessage(msg)
}

// handleStats shows the summary and text charts
func (b *Bot) handleStats(message *tgbotapi.Message) {
	stats := b.catalog.Stats()
	if stats.TotalBooks == 0 {
		b.reply(message.Chat.ID, report.EmptyStatsMessage)
		return
	}
	b.reply(message.Chat.ID, formatStats(stats))
}

// removeBook removes the book at index and reports the outcome
func (b *Bot) removeBook(ctx context.Context, chatID int64, index int) {
	removed, ok, err := b.catalog.RemoveAt(ctx, index)
	b.reportRemoval(chatID, index, removed, ok, err)
}

func (b *Bot) reportRemoval(chatID int64, index int, removed models.Book, ok bool, err error) {
	if errors.Is(err, catalog.ErrChanged) {
		b.reply(chatID, listChangedText)
		return
	}
	if !ok {
		b.reply(chatID, fmt.Sprintf("There is no book number %d. Use /list to see the numbers.", index+1))
		return
	}
	if err != nil {
		b.reply(chatID, saveFailureText(removed, err))
		return
	}
	b.reply(chatID, fmt.Sprintf("✅ Removed \"%s\" by %s", removed.Title, removed.Author))
}

const listChangedText = "The library has changed since the list was shown. Run /remove again."

func saveFailureText(book models.Book, err error) string {
	if errors.Is(err, catalog.ErrPersist) {
		return fmt.Sprintf("⚠️ \"%s\" was updated in memory but could not be saved: %v", book.Title, err)
	}
	return errorText("Error", err)
}

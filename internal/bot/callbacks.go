package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"booklib/internal/catalog"
	"booklib/internal/models"
)

// Callback data prefixes
const (
	callbackYear   = "year:"
	callbackGenre  = "genre:"
	callbackRead   = "read:"
	callbackRemove = "remove:"
	callbackField  = "field:"
)

// handleYearCallback accepts the "this year" shortcut
func (b *Bot) handleYearCallback(query *tgbotapi.CallbackQuery, state *ConversationState) {
	if state.Command != commandAdd || state.Step != 3 {
		return
	}
	year, err := strconv.Atoi(strings.TrimPrefix(query.Data, callbackYear))
	if err != nil {
		return
	}
	b.askGenre(query.Message.Chat.ID, state, year)
}

// handleGenreCallback stores the genre and asks for the read status
func (b *Bot) handleGenreCallback(query *tgbotapi.CallbackQuery, state *ConversationState) {
	if state.Command != commandAdd || state.Step != 4 {
		return
	}

	idx, err := strconv.Atoi(strings.TrimPrefix(query.Data, callbackGenre))
	if err != nil || idx < 0 || idx >= len(models.Genres) {
		b.reply(query.Message.Chat.ID, "Error: Invalid genre selection")
		return
	}

	state.Data["genre"] = models.Genres[idx]
	state.Step = 5

	msg := tgbotapi.NewMessage(query.Message.Chat.ID, "Have you read it?")
	msg.ReplyMarkup = readKeyboard()
	b.sendMessage(msg)
}

// handleReadCallback completes the add conversation
func (b *Bot) handleReadCallback(ctx context.Context, query *tgbotapi.CallbackQuery, state *ConversationState) {
	if state.Command != commandAdd || state.Step != 5 {
		return
	}

	chatID := query.Message.Chat.ID
	read := strings.TrimPrefix(query.Data, callbackRead) == "yes"
	title := state.Data["title"].(string)
	author := state.Data["author"].(string)
	year := state.Data["year"].(int)
	genre := state.Data["genre"].(string)

	state.Step = stepDone

	book, err := b.catalog.Add(ctx, title, author, year, genre, read)
	if err != nil {
		b.logger.Error("Failed to add book from bot",
			zap.Error(err),
			zap.Int64("user_id", query.From.ID),
			zap.String("title", title),
		)
		b.reply(chatID, saveFailureText(book, err))
		return
	}

	b.reply(chatID, fmt.Sprintf("✅ Book added!\n\n%s", formatBook(book)))
}

// handleRemoveCallback removes the selected book
func (b *Bot) handleRemoveCallback(ctx context.Context, query *tgbotapi.CallbackQuery, state *ConversationState) {
	if state.Command != commandRemove {
		return
	}

	index, err := strconv.Atoi(strings.TrimPrefix(query.Data, callbackRemove))
	if err != nil {
		return
	}

	state.Step = stepDone
	chatID := query.Message.Chat.ID

	shown, _ := state.Data["books"].([]models.Book)
	if index < 0 || index >= len(shown) {
		b.reply(chatID, listChangedText)
		return
	}

	removed, ok, err := b.catalog.RemoveExpected(ctx, index, shown[index])
	if !ok && err == nil {
		// the shown book was at the end and is gone
		err = catalog.ErrChanged
	}
	b.reportRemoval(chatID, index, removed, ok, err)
}

// handleFieldCallback stores the search field and asks for the term
func (b *Bot) handleFieldCallback(query *tgbotapi.CallbackQuery, state *ConversationState) {
	if state.Command != commandSearch {
		return
	}

	field, err := models.ParseSearchField(strings.TrimPrefix(query.Data, callbackField))
	if err != nil {
		b.reply(query.Message.Chat.ID, "Error: Invalid search field")
		return
	}

	state.Data["field"] = field
	state.Step = 2
	b.reply(query.Message.Chat.ID, fmt.Sprintf("Enter the %s to search for:", strings.ToLower(string(field))))
}

package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// handleMessage processes a single message
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	// Recover from panics to prevent bot crashes
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in handleMessage",
				zap.Any("panic", r),
				zap.Int64("user_id", message.From.ID),
			)
			delete(b.states, message.From.ID)
			b.reply(message.Chat.ID, "An error occurred while processing your request. Please try again.")
		}
	}()

	userID := message.From.ID

	// Check if user is in a conversation
	if state, ok := b.states[userID]; ok {
		if state.Step == stepDone {
			delete(b.states, userID)
		} else if message.IsCommand() {
			// Any command cancels an ongoing conversation
			delete(b.states, userID)
		} else {
			b.handleConversation(ctx, message, state)
			return
		}
	}

	if !message.IsCommand() {
		b.reply(message.Chat.ID, "Use /start to see available commands.")
		return
	}

	switch message.Command() {
	case "start", "help":
		b.handleStart(message)
	case "list":
		b.handleList(message)
	case "add":
		b.handleAddStart(message)
	case "remove":
		b.handleRemoveStart(ctx, message)
	case "search":
		b.handleSearchStart(message)
	case "stats":
		b.handleStats(message)
	default:
		b.reply(message.Chat.ID, "Unknown command. Use /start to see available commands.")
	}
}

// handleCallbackQuery processes inline keyboard button clicks
func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in handleCallbackQuery",
				zap.Any("panic", r),
				zap.String("callback_data", query.Data),
			)
			delete(b.states, query.From.ID)
		}
	}()

	userID := query.From.ID

	// Answer the callback query to remove loading state
	if b.out != nil {
		if _, err := b.out.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
			b.logger.Debug("Failed to answer callback query", zap.Error(err))
		}
	}

	if query.Message == nil {
		return
	}

	state, ok := b.states[userID]
	if !ok {
		b.reply(query.Message.Chat.ID, "This selection has expired. Please start the command again.")
		return
	}

	data := query.Data
	switch {
	case strings.HasPrefix(data, callbackYear):
		b.handleYearCallback(query, state)
	case strings.HasPrefix(data, callbackGenre):
		b.handleGenreCallback(query, state)
	case strings.HasPrefix(data, callbackRead):
		b.handleReadCallback(ctx, query, state)
	case strings.HasPrefix(data, callbackRemove):
		b.handleRemoveCallback(ctx, query, state)
	case strings.HasPrefix(data, callbackField):
		b.handleFieldCallback(query, state)
	default:
		b.logger.Debug("Ignoring unknown callback", zap.String("callback_data", data))
	}

	if state.Step == stepDone {
		delete(b.states, userID)
	}
}

// handleConversation processes multi-step conversations
func (b *Bot) handleConversation(ctx context.Context, message *tgbotapi.Message, state *ConversationState) {
	switch state.Command {
	case commandAdd:
		b.handleAddConversation(message, state)
	case commandSearch:
		b.handleSearchConversation(message, state)
	case commandRemove:
		b.reply(message.Chat.ID, "Please pick a book from the list above, or send /remove N.")
	}

	if state.Step == stepDone {
		delete(b.states, message.From.ID)
	}
}

func errorText(action string, err error) string {
	return fmt.Sprintf("%s: %v", action, err)
}

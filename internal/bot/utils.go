package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"booklib/internal/models"
	"booklib/internal/report"
)

const chartWidth = 12

// sendMessage sends msg, logging failures
func (b *Bot) sendMessage(msg tgbotapi.MessageConfig) {
	if b.out == nil {
		return // For testing
	}
	if _, err := b.out.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", msg.ChatID),
		)
	}
}

// reply sends a plain text message
func (b *Bot) reply(chatID int64, text string) {
	b.sendMessage(tgbotapi.NewMessage(chatID, text))
}

func formatBook(book models.Book) string {
	status := "📕 Unread"
	if book.ReadStatus {
		status = "📗 Read"
	}
	return fmt.Sprintf("%s\nby %s\n%d · %s · %s", book.Title, book.Author, book.PublicationYear, book.Genre, status)
}

// writeBookLines writes one numbered line per book
func writeBookLines(text *strings.Builder, books []models.Book) {
	for i, book := range books {
		mark := "📕"
		if book.ReadStatus {
			mark = "📗"
		}
		text.WriteString(fmt.Sprintf("%d. %s %s - %s (%d, %s)\n",
			i+1, mark, book.Title, book.Author, book.PublicationYear, book.Genre))
	}
}

// formatStats renders the summary and the three charts as plain text
func formatStats(stats models.Stats) string {
	var text strings.Builder
	text.WriteString("📊 Library statistics\n\n")
	text.WriteString(fmt.Sprintf("Total books: %d\n", stats.TotalBooks))
	text.WriteString(fmt.Sprintf("Read: %d\n", stats.ReadBooks))
	text.WriteString(fmt.Sprintf("Unread: %d\n", stats.UnreadBooks()))
	text.WriteString(fmt.Sprintf("Percent read: %s\n", report.FormatPercent(stats.PercentRead)))

	writeChart(&text, "Read vs unread", report.ReadBars(stats))
	writeChart(&text, "Books by genre", report.CountBars(stats.Genres))
	writeChart(&text, "Books by decade", report.DecadeBars(stats.Decades))
	return text.String()
}

func writeChart(text *strings.Builder, title string, bars []report.Bar) {
	maxCount := 0
	for _, bar := range bars {
		maxCount = max(maxCount, bar.Count)
	}

	text.WriteString("\n" + title + "\n")
	for _, bar := range bars {
		text.WriteString(fmt.Sprintf("%s %s %d\n", bar.Label, report.BarLine(bar.Count, maxCount, chartWidth), bar.Count))
	}
}

func yearKeyboard(currentYear int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("📆 This year (%d)", currentYear),
				fmt.Sprintf("%s%d", callbackYear, currentYear)),
		),
	)
}

// genreKeyboard lays the genres out in 2 columns
func genreKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var currentRow []tgbotapi.InlineKeyboardButton
	for i, genre := range models.Genres {
		currentRow = append(currentRow, tgbotapi.NewInlineKeyboardButtonData(genre, fmt.Sprintf("%s%d", callbackGenre, i)))

		if len(currentRow) == 2 || i == len(models.Genres)-1 {
			rows = append(rows, currentRow)
			currentRow = []tgbotapi.InlineKeyboardButton{}
		}
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func readKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📗 Read", callbackRead+"yes"),
			tgbotapi.NewInlineKeyboardButtonData("📕 Unread", callbackRead+"no"),
		),
	)
}

func removeKeyboard(books []models.Book) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(books))
	for i, book := range books {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%d. %s", i+1, book.Title), fmt.Sprintf("%s%d", callbackRemove, i)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func fieldKeyboard() tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, field := range models.SearchFields {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(string(field), callbackField+string(field)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

package bot

import (
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"booklib/internal/catalog"
)

// Conversation commands
const (
	commandAdd    = "add"
	commandRemove = "remove"
	commandSearch = "search"
)

// stepDone marks a finished conversation
const stepDone = -1

// messenger is the part of the Telegram API used to talk to users
type messenger interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot represents the Telegram bot wrapper
type Bot struct {
	api          *tgbotapi.BotAPI
	out          messenger
	catalog      *catalog.Catalog
	allowedUsers map[int64]bool
	states       map[int64]*ConversationState
	statesMu     sync.Mutex // held for the whole handling of one update
	logger       *zap.Logger
	now          func() time.Time
}

// ConversationState tracks the state of multi-step commands
type ConversationState struct {
	Command string
	Step    int
	Data    map[string]interface{}
}

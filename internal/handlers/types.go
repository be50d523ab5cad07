package handlers

import (
	"intakebot/internal/config"
	"intakebot/internal/constants"
	"intakebot/internal/models"
	"intakebot/internal/session"
)

// OrderStore - хранилище заявок, которым пользуются обработчики.
// Отсутствие заявки сообщается через false, а не через ошибку.
type OrderStore interface {
	CreateOrder(requesterID int64, requesterHandle, name, task string) (int64, error)
	ListOrders(status string) ([]models.Order, error)
	ListNewOrders() ([]models.Order, error)
	MarkInProgress(orderID int64) (bool, error)
	MarkDone(orderID int64) (bool, error)
	GetOrder(orderID int64) (models.Order, bool, error)
}

// Messenger доставляет сообщения пользователям по chatID.
type Messenger interface {
	SendText(chatID int64, text string) error
	SendDocument(chatID int64, fileName string, data []byte, caption string) error
}

// HandlerDependencies содержит все зависимости, необходимые для обработчиков.
type HandlerDependencies struct {
	Config         *config.Config
	Messenger      Messenger
	SessionManager *session.SessionManager
	Store          OrderStore
}

// BotHandler инкапсулирует логику обработки сообщений.
type BotHandler struct {
	Deps HandlerDependencies
}

// NewBotHandler создает новый экземпляр BotHandler.
func NewBotHandler(deps HandlerDependencies) *BotHandler {
	if deps.Config == nil || deps.Messenger == nil || deps.SessionManager == nil || deps.Store == nil {
		panic("Не все зависимости для BotHandler были предоставлены.")
	}
	return &BotHandler{Deps: deps}
}

// IncomingMessage - входящее текстовое сообщение, не зависящее от транспорта.
type IncomingMessage struct {
	ChatID   int64  // Куда отвечать
	UserID   int64  // Идентичность отправителя
	Username string // @username без @, может быть пустым
	Text     string
}

func (m IncomingMessage) handle() string {
	if m.Username == "" {
		return constants.UNKNOWN_USERNAME
	}
	return m.Username
}

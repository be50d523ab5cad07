// Файл: internal/handlers/message_handler.go

package handlers

import (
	"fmt"
	"log"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"intakebot/internal/constants"
)

// HandleMessage обрабатывает входящее обновление от Telegram.
// Ошибки хранилища и доставки возвращаются вызывающему коду без повторов.
func (bh *BotHandler) HandleMessage(update tgbotapi.Update) error {
	if update.Message == nil {
		return nil
	}
	message := update.Message

	incoming := IncomingMessage{
		ChatID: message.Chat.ID,
		UserID: message.Chat.ID,
		Text:   message.Text,
	}
	if message.From != nil {
		incoming.UserID = message.From.ID
		incoming.Username = message.From.UserName
	}
	return bh.HandleIncoming(incoming)
}

// HandleIncoming маршрутизирует сообщение: /start и /cancel имеют приоритет,
// затем активный диалог, затем команды оператора.
func (bh *BotHandler) HandleIncoming(msg IncomingMessage) error {
	unlock := bh.Deps.SessionManager.LockChat(msg.UserID)
	defer unlock()

	cmd := ParseCommand(msg.Text, bh.Deps.Config.BotUsername)
	log.Printf("HandleIncoming: ChatID=%d, UserID=%d, Command=%T", msg.ChatID, msg.UserID, cmd)

	switch c := cmd.(type) {
	case StartCommand:
		return bh.handleStart(msg, c)
	case CancelCommand:
		return bh.handleCancel(msg)
	}

	currentState := bh.Deps.SessionManager.GetState(msg.UserID)
	if currentState != constants.STATE_IDLE {
		log.Printf("HandleIncoming: Текущее состояние для UserID %d: %s", msg.UserID, currentState)
		return bh.handleDialogInput(msg, currentState)
	}

	switch c := cmd.(type) {
	case ListOrdersCommand:
		return bh.handleListOrders(msg, c)
	case TakeCommand:
		return bh.handleTake(msg, c)
	case DoneCommand:
		return bh.handleDone(msg, c)
	case ExportCommand:
		return bh.handleExport(msg)
	case UnknownCommand:
		log.Printf("HandleIncoming: Неизвестная команда '%s' от UserID %d проигнорирована", c.Name, msg.UserID)
		return nil
	case DialogText:
		log.Printf("HandleIncoming: Текст вне диалога от UserID %d проигнорирован", msg.UserID)
		return nil
	default:
		return fmt.Errorf("необработанный тип команды %T", cmd)
	}
}

func (bh *BotHandler) handleDialogInput(msg IncomingMessage, state string) error {
	switch state {
	case constants.STATE_AWAITING_NAME:
		return bh.handleNameInput(msg)
	case constants.STATE_AWAITING_TASK:
		return bh.handleTaskInput(msg)
	case constants.STATE_AWAITING_BUDGET:
		return bh.handleBudgetInput(msg)
	default:
		log.Printf("handleDialogInput: Неизвестное состояние '%s' для UserID %d, сессия сброшена", state, msg.UserID)
		bh.Deps.SessionManager.Reset(msg.UserID)
		return nil
	}
}

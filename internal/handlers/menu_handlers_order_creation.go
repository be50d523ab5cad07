package handlers

import (
	"fmt"
	"log"
	"strings"

	"intakebot/internal/constants"
	"intakebot/internal/formatters"
	"intakebot/internal/session"
	"intakebot/internal/utils"
)

// handleStart сбрасывает прежнюю сессию и начинает диалог с вопроса об имени.
func (bh *BotHandler) handleStart(msg IncomingMessage, cmd StartCommand) error {
	log.Printf("handleStart: Начало диалога для UserID %d (payload '%s')", msg.UserID, cmd.Payload)
	sm := bh.Deps.SessionManager
	sm.Reset(msg.UserID)
	sm.UpdateTempOrder(msg.UserID, session.NewTempOrder(msg.UserID))
	sm.SetState(msg.UserID, constants.STATE_AWAITING_NAME)
	return bh.sendMessage(msg.ChatID, constants.MsgGreeting)
}

// handleCancel очищает сессию. Без активной сессии просто подтверждает отмену.
func (bh *BotHandler) handleCancel(msg IncomingMessage) error {
	log.Printf("handleCancel: Отмена диалога для UserID %d (состояние %s)", msg.UserID, bh.Deps.SessionManager.GetState(msg.UserID))
	bh.Deps.SessionManager.Reset(msg.UserID)
	return bh.sendMessage(msg.ChatID, constants.MsgCancelled)
}

func (bh *BotHandler) handleNameInput(msg IncomingMessage) error {
	name, err := utils.ValidateName(msg.Text)
	if err != nil {
		log.Printf("handleNameInput: UserID %d: %v", msg.UserID, err)
		return bh.sendMessage(msg.ChatID, constants.MsgNameTooShort)
	}

	sm := bh.Deps.SessionManager
	orderData := sm.GetTempOrder(msg.UserID)
	orderData.Name = name
	sm.UpdateTempOrder(msg.UserID, orderData)
	sm.SetState(msg.UserID, constants.STATE_AWAITING_TASK)

	if err := bh.sendMessage(msg.ChatID, fmt.Sprintf(constants.MsgNiceToMeetFmt, name)); err != nil {
		return err
	}
	return bh.sendMessage(msg.ChatID, constants.MsgAskTask)
}

func (bh *BotHandler) handleTaskInput(msg IncomingMessage) error {
	task, err := utils.ValidateTask(msg.Text)
	if err != nil {
		log.Printf("handleTaskInput: UserID %d: %v", msg.UserID, err)
		return bh.sendMessage(msg.ChatID, constants.MsgTaskTooShort)
	}

	sm := bh.Deps.SessionManager
	orderData := sm.GetTempOrder(msg.UserID)
	orderData.Task = task
	sm.UpdateTempOrder(msg.UserID, orderData)
	sm.SetState(msg.UserID, constants.STATE_AWAITING_BUDGET)

	return bh.sendMessage(msg.ChatID, constants.MsgAskBudget)
}

// handleBudgetInput завершает диалог: отказ при бюджете ниже минимума
// или создание заявки с уведомлением оператора.
func (bh *BotHandler) handleBudgetInput(msg IncomingMessage) error {
	budgetText := strings.TrimSpace(msg.Text)
	budgetValue, ok := utils.ParseBudget(budgetText)
	if !ok {
		return bh.sendMessage(msg.ChatID, constants.MsgBudgetNotNumber)
	}

	sm := bh.Deps.SessionManager
	minBudget := bh.Deps.Config.MinBudget
	if budgetValue < minBudget {
		log.Printf("handleBudgetInput: UserID %d указал бюджет %d ниже минимума %d, заявка отклонена", msg.UserID, budgetValue, minBudget)
		sm.Reset(msg.UserID)
		return bh.sendMessage(msg.ChatID, fmt.Sprintf(constants.MsgBudgetTooLowFmt, minBudget))
	}

	orderData := sm.GetTempOrder(msg.UserID)
	handle := msg.handle()
	orderID, err := bh.Deps.Store.CreateOrder(
		msg.UserID,
		handle,
		orderData.Name,
		formatters.ComposeTaskText(orderData.Task, budgetText),
	)
	if err != nil {
		return fmt.Errorf("не удалось сохранить заявку пользователя %d: %w", msg.UserID, err)
	}
	// Сессия закрывается сразу после сохранения, до уведомлений
	sm.Reset(msg.UserID)
	log.Printf("handleBudgetInput: Заявка #%d создана для UserID %d", orderID, msg.UserID)

	notice := formatters.FormatNewOrderNotice(orderID, orderData.Name, handle, orderData.Task, budgetText)
	if err := bh.sendMessage(bh.Deps.Config.OperatorChatID, notice); err != nil {
		return err
	}
	return bh.sendMessage(msg.ChatID, constants.MsgOrderAccepted)
}

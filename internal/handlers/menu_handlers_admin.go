package handlers

import (
	"fmt"
	"log"
	"time"

	"intakebot/internal/constants"
	"intakebot/internal/formatters"
	"intakebot/internal/models"
)

// handleListOrders - /orders [all|done|work].
func (bh *BotHandler) handleListOrders(msg IncomingMessage, cmd ListOrdersCommand) error {
	if !bh.isOperator(msg) {
		return bh.sendAccessDenied(msg, constants.MsgAccessDeniedOrders)
	}
	if !cmd.Valid {
		return bh.sendMessage(msg.ChatID, constants.MsgOrdersUsage)
	}

	orders, err := bh.Deps.Store.ListOrders(constants.FilterStatusMap[cmd.Filter])
	if err != nil {
		return fmt.Errorf("не удалось получить список заявок: %w", err)
	}
	if len(orders) == 0 {
		return bh.sendMessage(msg.ChatID, constants.MsgNoOrders)
	}
	return bh.sendMessage(msg.ChatID, formatters.FormatOrderList(constants.FilterTitleMap[cmd.Filter], orders))
}

// handleTake - /take <id>.
func (bh *BotHandler) handleTake(msg IncomingMessage, cmd TakeCommand) error {
	if !bh.isOperator(msg) {
		return bh.sendAccessDenied(msg, constants.MsgAccessDeniedTake)
	}
	if !cmd.Valid {
		return bh.sendMessage(msg.ChatID, constants.MsgTakeUsage)
	}
	_, found, err := bh.TransitionOrder(cmd.OrderID, constants.STATUS_INPROGRESS)
	if err != nil {
		return err
	}
	if !found {
		return bh.sendMessage(msg.ChatID, constants.MsgOrderNotFound)
	}
	return bh.sendMessage(msg.ChatID, fmt.Sprintf(constants.MsgTakeAckFmt, cmd.OrderID))
}

// handleDone - /done <id>.
func (bh *BotHandler) handleDone(msg IncomingMessage, cmd DoneCommand) error {
	if !bh.isOperator(msg) {
		return bh.sendAccessDenied(msg, constants.MsgAccessDeniedDone)
	}
	if !cmd.Valid {
		return bh.sendMessage(msg.ChatID, constants.MsgDoneUsage)
	}
	_, found, err := bh.TransitionOrder(cmd.OrderID, constants.STATUS_DONE)
	if err != nil {
		return err
	}
	if !found {
		return bh.sendMessage(msg.ChatID, constants.MsgOrderNotFound)
	}
	return bh.sendMessage(msg.ChatID, fmt.Sprintf(constants.MsgDoneAckFmt, cmd.OrderID))
}

// TransitionOrder меняет статус заявки и уведомляет заказчика.
// found=false, если заявки нет; в этом случае никто не уведомляется.
// Используется и ботом, и HTTP API оператора.
func (bh *BotHandler) TransitionOrder(orderID int64, status string) (models.Order, bool, error) {
	var (
		updated         bool
		err             error
		requesterNotice string
	)
	switch status {
	case constants.STATUS_INPROGRESS:
		updated, err = bh.Deps.Store.MarkInProgress(orderID)
		requesterNotice = constants.MsgRequesterInProgress
	case constants.STATUS_DONE:
		updated, err = bh.Deps.Store.MarkDone(orderID)
		requesterNotice = constants.MsgRequesterDone
	default:
		return models.Order{}, false, fmt.Errorf("недопустимый целевой статус '%s'", status)
	}
	if err != nil {
		return models.Order{}, false, fmt.Errorf("не удалось изменить статус заявки #%d: %w", orderID, err)
	}
	if !updated {
		log.Printf("TransitionOrder: заявка #%d не найдена", orderID)
		return models.Order{}, false, nil
	}

	order, found, err := bh.Deps.Store.GetOrder(orderID)
	if err != nil {
		return models.Order{}, false, fmt.Errorf("не удалось получить заявку #%d: %w", orderID, err)
	}
	if !found {
		return models.Order{}, false, nil
	}

	if err := bh.sendMessage(order.RequesterID, requesterNotice); err != nil {
		return order, true, err
	}
	log.Printf("TransitionOrder: заявка #%d переведена в %s, заказчик %d уведомлен", orderID, status, order.RequesterID)
	return order, true, nil
}

// handleExport - /export, выгрузка всех заявок в Excel.
func (bh *BotHandler) handleExport(msg IncomingMessage) error {
	if !bh.isOperator(msg) {
		return bh.sendAccessDenied(msg, constants.MsgAccessDeniedOrders)
	}

	orders, err := bh.Deps.Store.ListOrders("")
	if err != nil {
		return fmt.Errorf("не удалось получить заявки для выгрузки: %w", err)
	}
	if len(orders) == 0 {
		return bh.sendMessage(msg.ChatID, constants.MsgExportEmpty)
	}

	data, err := formatters.BuildOrdersWorkbook(orders)
	if err != nil {
		return fmt.Errorf("не удалось сформировать Excel файл: %w", err)
	}

	now := time.Now()
	fileName := fmt.Sprintf("orders_%s.xlsx", now.Format("20060102_150405"))
	caption := fmt.Sprintf(constants.MsgExportCaptionFmt, now.Format("02.01.2006"))
	if err := bh.Deps.Messenger.SendDocument(msg.ChatID, fileName, data, caption); err != nil {
		log.Printf("handleExport: Ошибка отправки Excel-файла для chatID %d: %v", msg.ChatID, err)
		return fmt.Errorf("ошибка отправки Excel-файла: %w", err)
	}
	return nil
}

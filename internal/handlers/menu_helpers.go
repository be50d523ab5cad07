package handlers

import (
	"fmt"
	"log"
)

// sendMessage отправляет текст и оборачивает ошибку доставки.
func (bh *BotHandler) sendMessage(chatID int64, text string) error {
	if err := bh.Deps.Messenger.SendText(chatID, text); err != nil {
		log.Printf("sendMessage: Ошибка отправки сообщения для chatID %d: %v", chatID, err)
		return fmt.Errorf("ошибка отправки сообщения в чат %d: %w", chatID, err)
	}
	return nil
}

// isOperator проверяет идентичность отправителя. Вызывается в каждой команде оператора заново.
func (bh *BotHandler) isOperator(msg IncomingMessage) bool {
	return msg.UserID == bh.Deps.Config.OperatorChatID
}

// sendAccessDenied отвечает отказом в доступе.
func (bh *BotHandler) sendAccessDenied(msg IncomingMessage, text string) error {
	log.Printf("[ACCESS_DENIED] Отказ в доступе для UserID=%d", msg.UserID)
	return bh.sendMessage(msg.ChatID, text)
}

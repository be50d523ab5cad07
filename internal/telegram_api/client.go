package telegram_api

import (
	"fmt"
	"log"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
)

// BotClient представляет собой обертку для Telegram Bot API.
// BotClient represents a wrapper for the Telegram Bot API.
type BotClient struct {
	api   *tgbotapi.BotAPI
	Debug bool
}

// InitBot инициализирует Telegram бота и отключает вебхук, чтобы работал getUpdates.
func InitBot(token string, debug bool) (*BotClient, error) {
	if token == "" {
		return nil, fmt.Errorf("токен Telegram API не предоставлен")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации Telegram Bot API: %w", err)
	}
	api.Debug = debug

	log.Printf("Авторизован как аккаунт %s", api.Self.UserName)

	deleteWebhookConfig := tgbotapi.DeleteWebhookConfig{
		DropPendingUpdates: false,
	}
	if _, err = api.Request(deleteWebhookConfig); err != nil {
		// Ошибка возможна, если вебхука не было
		log.Printf("Предупреждение или ошибка при отключении вебхука: %v. Это может быть нормально, если вебхук не был установлен.", err)
	} else {
		log.Println("Вебхук успешно отключен (или не был установлен).")
	}

	return &BotClient{api: api, Debug: debug}, nil
}

// Username возвращает @username бота без @.
func (bc *BotClient) Username() string {
	if bc == nil || bc.api == nil {
		return ""
	}
	return bc.api.Self.UserName
}

// GetUpdatesChan возвращает канал обновлений от Telegram.
func (bc *BotClient) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	if bc == nil || bc.api == nil {
		log.Fatal("BotClient или его API не инициализирован перед запросом обновлений.")
	}
	if bc.Debug {
		log.Printf("Запрос канала обновлений с конфигурацией: %+v", config)
	}
	return bc.api.GetUpdatesChan(config)
}

// StopReceivingUpdates останавливает long polling.
func (bc *BotClient) StopReceivingUpdates() {
	if bc != nil && bc.api != nil {
		bc.api.StopReceivingUpdates()
	}
}

// Send отправляет сообщение через BotClient.
func (bc *BotClient) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if bc == nil || bc.api == nil {
		return tgbotapi.Message{}, fmt.Errorf("BotClient или его API не инициализирован")
	}
	if bc.Debug {
		switch msg := c.(type) {
		case tgbotapi.MessageConfig:
			log.Printf("Отправка сообщения: ChatID=%d, Text='%.50s...'", msg.ChatID, msg.Text)
		case tgbotapi.DocumentConfig:
			log.Printf("Отправка документа: ChatID=%d, Caption='%.50s...'", msg.ChatID, msg.Caption)
		default:
			log.Printf("Отправка/запрос типа %T", c)
		}
	}
	return bc.api.Send(c)
}

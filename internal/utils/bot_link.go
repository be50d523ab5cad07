package utils

import (
	"fmt"
	"log"

	"github.com/skip2/go-qrcode"

	"intakebot/internal/constants"
)

// GenerateBotLink возвращает deep-link ссылку, запускающую прием заявки.
func GenerateBotLink(botUsername string) (string, error) {
	if botUsername == "" {
		log.Println("GenerateBotLink: botUsername не предоставлен.")
		return "", fmt.Errorf("имя пользователя бота не настроено")
	}
	return fmt.Sprintf("https://t.me/%s?start=%s", botUsername, constants.StartPayload), nil
}

// GenerateQRCode генерирует PNG с QR-кодом для ссылки.
func GenerateQRCode(link string) ([]byte, error) {
	qrBytes, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		log.Printf("GenerateQRCode: ошибка кодирования QR-кода для ссылки '%s': %v", link, err)
		return nil, err
	}
	return qrBytes, nil
}

package telegram_api

import (
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
)

// MaxMessageLength - ограничение Telegram на длину текста сообщения (в символах).
const MaxMessageLength = 4096

// SendText отправляет текст, при необходимости разбивая его на несколько сообщений.
func (bc *BotClient) SendText(chatID int64, text string) error {
	for _, part := range SplitMessage(text, MaxMessageLength) {
		if _, err := bc.Send(tgbotapi.NewMessage(chatID, part)); err != nil {
			log.Printf("SendText: ОШИБКА отправки сообщения для chatID %d: %v", chatID, err)
			return err
		}
	}
	return nil
}

// SendDocument отправляет файл из памяти.
func (bc *BotClient) SendDocument(chatID int64, fileName string, data []byte, caption string) error {
	if len(data) == 0 {
		return fmt.Errorf("пустой файл %s", fileName)
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: fileName, Bytes: data})
	doc.Caption = caption
	if _, err := bc.Send(doc); err != nil {
		log.Printf("SendDocument: Ошибка отправки файла %s для chatID %d: %v", fileName, chatID, err)
		return err
	}
	return nil
}

// SplitMessage делит текст на части не длиннее limit символов.
// Разрез делается по пустой строке, затем по переводу строки, и только потом посреди строки.
func SplitMessage(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var parts []string
	rest := text
	for utf8.RuneCountInString(rest) > limit {
		head := truncateRunes(rest, limit)
		cut := strings.LastIndex(head, "\n\n")
		sepLen := 2
		if cut <= 0 {
			cut = strings.LastIndex(head, "\n")
			sepLen = 1
		}
		if cut <= 0 {
			cut = len(head)
			sepLen = 0
		}
		parts = append(parts, rest[:cut])
		rest = rest[cut+sepLen:]
	}
	if rest != "" {
		parts = append(parts, rest)
	}
	return parts
}

// truncateRunes возвращает префикс строки длиной не более n символов.
func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

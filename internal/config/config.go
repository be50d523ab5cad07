// internal/config/config.go
package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"

	"intakebot/internal/constants"
)

const defaultPort = "8080"

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	TelegramToken  string
	DatabaseURL    string
	AppEnv         string
	BotUsername    string
	OperatorChatID int64 // Единственный оператор, которому доступны /orders, /take, /done
	Port           string
	MinBudget      int
	DBHost         string
	DBPort         string
	DBName         string
}

// IsDev сообщает, включен ли режим разработки (отладочный вывод бота).
func (c *Config) IsDev() bool {
	return c.AppEnv == "dev"
}

// LoadConfig загружает конфигурацию из переменных окружения.
// Отсутствие токена, DATABASE_URL или OPERATOR_CHAT_ID считается критической ошибкой.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_APITOKEN"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		AppEnv:        os.Getenv("ENV"),
		BotUsername:   strings.TrimPrefix(os.Getenv("BOT_USERNAME"), "@"),
		Port:          os.Getenv("PORT"),
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_APITOKEN не установлен")
	}

	operatorRaw := strings.TrimSpace(os.Getenv("OPERATOR_CHAT_ID"))
	if operatorRaw == "" {
		return nil, fmt.Errorf("OPERATOR_CHAT_ID не установлен")
	}
	operatorID, err := strconv.ParseInt(operatorRaw, 10, 64)
	if err != nil || operatorID == 0 {
		return nil, fmt.Errorf("некорректный OPERATOR_CHAT_ID '%s': %v", operatorRaw, err)
	}
	cfg.OperatorChatID = operatorID

	if cfg.Port == "" {
		cfg.Port = defaultPort
	}

	minBudgetStr := os.Getenv("MIN_BUDGET")
	if minBudgetStr == "" {
		cfg.MinBudget = constants.DEFAULT_MINBUDGET
	} else {
		minBudget, errParse := strconv.Atoi(minBudgetStr)
		if errParse != nil || minBudget <= 0 {
			log.Printf("Предупреждение: Некорректное значение для MIN_BUDGET ('%s'): %v. Используется значение по умолчанию %d.", minBudgetStr, errParse, constants.DEFAULT_MINBUDGET)
			cfg.MinBudget = constants.DEFAULT_MINBUDGET
		} else {
			cfg.MinBudget = minBudget
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL не установлен")
	}
	parsedURL, parseErr := url.Parse(cfg.DatabaseURL)
	if parseErr != nil {
		return nil, fmt.Errorf("ошибка парсинга DATABASE_URL: %w", parseErr)
	}
	cfg.DBHost = parsedURL.Hostname()
	cfg.DBPort = parsedURL.Port()
	if cfg.DBPort == "" {
		cfg.DBPort = "5432"
	}
	cfg.DBName = strings.TrimPrefix(parsedURL.Path, "/")

	if cfg.BotUsername == "" {
		log.Println("Предупреждение: BOT_USERNAME не установлен. Ссылка и QR-код бота недоступны.")
	}

	log.Println("Конфигурация загружена.")
	return cfg, nil
}

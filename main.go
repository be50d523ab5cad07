package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
	"github.com/joho/godotenv"

	"intakebot/internal/api"
	"intakebot/internal/config"
	"intakebot/internal/db"
	"intakebot/internal/handlers"
	"intakebot/internal/session"
	"intakebot/internal/telegram_api"
)

func main() {
	// --- Блок инициализации ---
	if err := godotenv.Load(); err != nil {
		log.Println("Предупреждение: не удалось загрузить файл .env. Переменные окружения должны быть установлены иным способом.")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Критическая ошибка: не удалось загрузить конфигурацию: %v", err)
	}
	log.Printf("База данных: host=%s port=%s dbname=%s", cfg.DBHost, cfg.DBPort, cfg.DBName)

	conn, err := db.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Критическая ошибка: не удалось инициализировать базу данных: %v", err)
	}
	defer db.CloseDB(conn)

	botClient, err := telegram_api.InitBot(cfg.TelegramToken, cfg.IsDev())
	if err != nil {
		log.Fatalf("Критическая ошибка: не удалось инициализировать Telegram бота: %v", err)
	}
	if cfg.BotUsername == "" {
		cfg.BotUsername = botClient.Username()
	}

	store := db.NewOrderStore(conn)
	sessionManager := session.NewSessionManager()
	botHandler := handlers.NewBotHandler(handlers.HandlerDependencies{
		Config:         cfg,
		Messenger:      botClient,
		SessionManager: sessionManager,
		Store:          store,
	})

	// --- HTTP API оператора ---
	server := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: api.NewRouter(api.ApiDependencies{
			Config:    cfg,
			SecretKey: cfg.TelegramToken,
			Store:     store,
			Bot:       botHandler,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("Запуск HTTP-сервера API на порту %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("КРИТИЧЕСКАЯ ОШИБКА: не удалось запустить HTTP-сервер: %v", err)
		}
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	// --- Запуск самого бота ---
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := botClient.GetUpdatesChan(u)

	log.Println("Бот и API-сервер запущены и готовы к работе...")

	for {
		select {
		case sig := <-signals:
			log.Printf("Получен сигнал %v", sig)
			GracefulShutdown(botClient, server, sessionManager)
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}
			if update.Message.From != nil {
				log.Printf("[%s] %s", update.Message.From.UserName, update.Message.Text)
			}
			go func(update tgbotapi.Update) {
				if err := botHandler.HandleMessage(update); err != nil {
					log.Printf("ОШИБКА обработки сообщения от chatID %d: %v", update.Message.Chat.ID, err)
				}
			}(update)
		}
	}
}

// GracefulShutdown останавливает polling и HTTP-сервер.
// Незавершенные диалоги хранятся только в памяти и теряются.
func GracefulShutdown(botClient *telegram_api.BotClient, server *http.Server, sessionManager *session.SessionManager) {
	log.Printf("Остановка... Незавершенных диалогов: %d", sessionManager.ActiveSessions())
	botClient.StopReceivingUpdates()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Ошибка остановки HTTP-сервера: %v", err)
	}
	log.Println("Бот остановлен.")
}

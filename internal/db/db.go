// Файл: internal/db/db.go
package db

import (
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// InitDB открывает соединение с базой данных и приводит схему в актуальное состояние.
func InitDB(dbURL string) (*sql.DB, error) {
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL не установлена")
	}

	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга DATABASE_URL: %w", err)
	}

	conn, err := sql.Open("postgres", parsedURL.String())
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ошибка проверки соединения с базой данных: %w", err)
	}
	log.Println("Успешное подключение к базе данных.")

	if err := EnsureSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}

	log.Println("Инициализация базы данных успешно завершена.")
	return conn, nil
}

// EnsureSchema создает таблицу заявок, применяет миграции и индексы.
// Функция идемпотентна.
func EnsureSchema(conn *sql.DB) error {
	createTablesSQL := `
        CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            user_id BIGINT,
            username TEXT,
            name TEXT,
            task TEXT,
            status TEXT DEFAULT 'new',
            created_at TEXT
        );
    `
	if _, err := conn.Exec(createTablesSQL); err != nil {
		return fmt.Errorf("ошибка создания таблиц: %w", err)
	}
	log.Println("Создание таблиц (если не существуют) завершено.")

	if err := migrateDBSchema(conn); err != nil {
		return fmt.Errorf("ошибка выполнения миграции схемы: %w", err)
	}

	createIndexesSQL := `
        CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
        CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders(user_id);
    `
	for _, stmt := range strings.Split(strings.TrimSpace(createIndexesSQL), ";") {
		trimmedStmt := strings.TrimSpace(stmt)
		if trimmedStmt == "" {
			continue
		}
		if _, errIdx := conn.Exec(trimmedStmt); errIdx != nil {
			log.Printf("Предупреждение: ошибка при создании индекса ('%s'): %v.", trimmedStmt, errIdx)
		}
	}
	log.Println("Создание индексов (если не существуют) завершено.")
	return nil
}

// migrateDBSchema доводит таблицы, созданные старыми версиями, до текущей схемы.
func migrateDBSchema(conn *sql.DB) error {
	migrations := []struct {
		name string
		sql  string
	}{
		{
			name: "orders.id_bigint",
			sql:  `ALTER TABLE orders ALTER COLUMN id TYPE BIGINT;`,
		},
		{
			name: "orders.id_seq_bigint",
			sql:  `ALTER SEQUENCE IF EXISTS orders_id_seq AS BIGINT;`,
		},
		{
			name: "orders.user_id_bigint",
			sql:  `ALTER TABLE orders ALTER COLUMN user_id TYPE BIGINT;`,
		},
		{
			name: "orders.status_default",
			sql:  `ALTER TABLE orders ALTER COLUMN status SET DEFAULT 'new';`,
		},
		{
			name: "orders.created_at",
			sql:  `ALTER TABLE orders ADD COLUMN IF NOT EXISTS created_at TEXT;`,
		},
	}

	for _, migration := range migrations {
		if _, err := conn.Exec(migration.sql); err != nil {
			if strings.Contains(err.Error(), "already exists") {
				log.Printf("INFO: Миграция '%s' пропущена (объект уже существует). Детали: %v", migration.name, err)
				continue
			}
			return fmt.Errorf("ошибка миграции схемы ('%s'): %w", migration.name, err)
		}
		log.Printf("INFO: Миграция ('%s') успешно применена или объект уже существовал.", migration.name)
	}
	return nil
}

// CloseDB закрывает соединение с базой данных.
func CloseDB(conn *sql.DB) {
	if conn != nil {
		conn.Close()
		log.Println("Соединение с базой данных закрыто.")
	}
}

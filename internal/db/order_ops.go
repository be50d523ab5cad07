package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"intakebot/internal/constants"
	"intakebot/internal/models"
)

// ErrInvalidStatus возвращается при фильтрации по неизвестному статусу.
var ErrInvalidStatus = errors.New("неизвестный статус заявки")

const selectOrderColumns = `SELECT id, user_id, username, name, task, status, created_at FROM orders`

// OrderStore - хранилище заявок поверх PostgreSQL.
// Каждая операция выполняется одним запросом в режиме autocommit.
type OrderStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewOrderStore создает хранилище заявок.
func NewOrderStore(conn *sql.DB) *OrderStore {
	return &OrderStore{db: conn, now: time.Now}
}

// CreateOrder сохраняет новую заявку со статусом new и возвращает ее ID.
// Дубликаты не проверяются.
func (s *OrderStore) CreateOrder(requesterID int64, requesterHandle, name, task string) (int64, error) {
	createdAt := s.now().Format(constants.CreatedAtLayout)

	var id int64
	err := s.db.QueryRow(`
        INSERT INTO orders (user_id, username, name, task, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id`,
		requesterID, requesterHandle, name, task, constants.STATUS_NEW, createdAt,
	).Scan(&id)
	if err != nil {
		log.Printf("CreateOrder: Ошибка выполнения INSERT для заявки (клиент %d): %v", requesterID, err)
		return 0, fmt.Errorf("ошибка сохранения заявки: %w", err)
	}

	log.Printf("Заявка #%d успешно создана для клиента %d.", id, requesterID)
	return id, nil
}

// ListOrders возвращает заявки в порядке добавления.
// Пустой status означает все заявки.
func (s *OrderStore) ListOrders(status string) ([]models.Order, error) {
	var (
		rows *sql.Rows
		err  error
	)
	switch status {
	case "":
		rows, err = s.db.Query(selectOrderColumns + ` ORDER BY id`)
	case constants.STATUS_NEW, constants.STATUS_INPROGRESS, constants.STATUS_DONE:
		rows, err = s.db.Query(selectOrderColumns+` WHERE status = $1 ORDER BY id`, status)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	if err != nil {
		log.Printf("ListOrders: ошибка выборки заявок (статус '%s'): %v", status, err)
		return nil, fmt.Errorf("ошибка получения заявок: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		order, errScan := scanOrder(rows)
		if errScan != nil {
			return nil, fmt.Errorf("ошибка чтения заявки: %w", errScan)
		}
		orders = append(orders, order)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка после итерации по заявкам: %w", err)
	}
	return orders, nil
}

// ListNewOrders возвращает заявки со статусом new.
func (s *OrderStore) ListNewOrders() ([]models.Order, error) {
	return s.ListOrders(constants.STATUS_NEW)
}

// MarkInProgress переводит заявку в работу независимо от текущего статуса.
// Возвращает false, если заявки с таким ID нет.
func (s *OrderStore) MarkInProgress(orderID int64) (bool, error) {
	return s.setStatus(orderID, constants.STATUS_INPROGRESS)
}

// MarkDone отмечает заявку выполненной независимо от текущего статуса.
func (s *OrderStore) MarkDone(orderID int64) (bool, error) {
	return s.setStatus(orderID, constants.STATUS_DONE)
}

func (s *OrderStore) setStatus(orderID int64, status string) (bool, error) {
	result, err := s.db.Exec("UPDATE orders SET status=$1 WHERE id=$2", status, orderID)
	if err != nil {
		log.Printf("setStatus: ошибка обновления статуса заявки #%d на %s: %v", orderID, status, err)
		return false, fmt.Errorf("ошибка обновления статуса заявки #%d: %w", orderID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ошибка получения числа обновленных строк: %w", err)
	}
	if affected == 0 {
		log.Printf("setStatus: заявка #%d не найдена", orderID)
		return false, nil
	}
	log.Printf("Статус заявки #%d обновлен на %s", orderID, status)
	return true, nil
}

// GetOrder возвращает заявку по ID. found=false, если заявки нет.
func (s *OrderStore) GetOrder(orderID int64) (models.Order, bool, error) {
	row := s.db.QueryRow(selectOrderColumns+` WHERE id = $1`, orderID)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Order{}, false, nil
		}
		log.Printf("GetOrder: ошибка получения заявки #%d: %v", orderID, err)
		return models.Order{}, false, fmt.Errorf("ошибка получения заявки #%d: %w", orderID, err)
	}
	return order, true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (models.Order, error) {
	var order models.Order
	var username, name, task, status, createdAt sql.NullString
	var userID sql.NullInt64

	if err := row.Scan(&order.ID, &userID, &username, &name, &task, &status, &createdAt); err != nil {
		return order, err
	}
	order.RequesterID = userID.Int64
	order.RequesterHandle = username.String
	order.Name = name.String
	order.Task = task.String
	order.Status = status.String
	if createdAt.Valid {
		if parsed, errParse := time.ParseInLocation(constants.CreatedAtLayout, createdAt.String, time.Local); errParse == nil {
			order.CreatedAt = parsed
		} else {
			log.Printf("scanOrder: некорректная дата создания заявки #%d ('%s'): %v", order.ID, createdAt.String, errParse)
		}
	}
	return order, nil
}

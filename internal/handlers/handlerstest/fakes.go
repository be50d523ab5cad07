// Package handlerstest содержит тестовые реализации хранилища и мессенджера.
package handlerstest

import (
	"errors"
	"sync"
	"time"

	"intakebot/internal/constants"
	"intakebot/internal/models"
)

// MemoryStore - хранилище заявок в памяти с той же семантикой, что и db.OrderStore.
type MemoryStore struct {
	mu     sync.Mutex
	orders []models.Order
	nextID int64

	// Err, если задана, возвращается всеми операциями.
	Err error
}

// NewMemoryStore создает пустое хранилище.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) CreateOrder(requesterID int64, requesterHandle, name, task string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	id := s.nextID
	s.nextID++
	s.orders = append(s.orders, models.Order{
		ID:              id,
		RequesterID:     requesterID,
		RequesterHandle: requesterHandle,
		Name:            name,
		Task:            task,
		Status:          constants.STATUS_NEW,
		CreatedAt:       time.Now().Truncate(time.Minute),
	})
	return id, nil
}

func (s *MemoryStore) ListOrders(status string) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	result := []models.Order{}
	for _, order := range s.orders {
		if status == "" || order.Status == status {
			result = append(result, order)
		}
	}
	return result, nil
}

func (s *MemoryStore) ListNewOrders() ([]models.Order, error) {
	return s.ListOrders(constants.STATUS_NEW)
}

func (s *MemoryStore) MarkInProgress(orderID int64) (bool, error) {
	return s.setStatus(orderID, constants.STATUS_INPROGRESS)
}

func (s *MemoryStore) MarkDone(orderID int64) (bool, error) {
	return s.setStatus(orderID, constants.STATUS_DONE)
}

func (s *MemoryStore) setStatus(orderID int64, status string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			s.orders[i].Status = status
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) GetOrder(orderID int64) (models.Order, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return models.Order{}, false, s.Err
	}
	for _, order := range s.orders {
		if order.ID == orderID {
			return order, true, nil
		}
	}
	return models.Order{}, false, nil
}

// Count возвращает число сохраненных заявок.
func (s *MemoryStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

// SentMessage - одно отправленное сообщение или документ.
type SentMessage struct {
	ChatID   int64
	Text     string
	FileName string
	Data     []byte
}

// ErrDelivery - ошибка доставки, которую возвращает Messenger с FailChatID.
var ErrDelivery = errors.New("delivery failed")

// RecordingMessenger запоминает все отправленные сообщения.
type RecordingMessenger struct {
	mu   sync.Mutex
	Sent []SentMessage

	// FailChatID, если не 0, - чат, доставка в который всегда падает.
	FailChatID int64
}

func (m *RecordingMessenger) SendText(chatID int64, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailChatID != 0 && chatID == m.FailChatID {
		return ErrDelivery
	}
	m.Sent = append(m.Sent, SentMessage{ChatID: chatID, Text: text})
	return nil
}

func (m *RecordingMessenger) SendDocument(chatID int64, fileName string, data []byte, caption string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailChatID != 0 && chatID == m.FailChatID {
		return ErrDelivery
	}
	m.Sent = append(m.Sent, SentMessage{ChatID: chatID, Text: caption, FileName: fileName, Data: data})
	return nil
}

// TextsTo возвращает тексты сообщений, отправленных в чат.
func (m *RecordingMessenger) TextsTo(chatID int64) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var texts []string
	for _, sent := range m.Sent {
		if sent.ChatID == chatID {
			texts = append(texts, sent.Text)
		}
	}
	return texts
}

// Last возвращает последнее отправленное сообщение.
func (m *RecordingMessenger) Last() SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return SentMessage{}
	}
	return m.Sent[len(m.Sent)-1]
}

// Reset очищает историю отправок.
func (m *RecordingMessenger) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = nil
}

package session

import (
	"log"
	"sync"

	"intakebot/internal/constants"
)

// SessionManager управляет состояниями диалога и временными данными заявок.
// SessionManager manages dialog states and temporary order data.
type SessionManager struct {
	userStates     map[int64]string // Ключ: chatID, Значение: текущее состояние диалога
	userStateMutex sync.RWMutex

	tempOrders      map[int64]TempOrderData
	tempOrdersMutex sync.RWMutex

	// Сообщения одного пользователя обрабатываются строго по одному
	chatLocks      map[int64]*sync.Mutex
	chatLocksMutex sync.Mutex
}

// NewSessionManager создает и возвращает новый экземпляр SessionManager.
func NewSessionManager() *SessionManager {
	return &SessionManager{
		userStates: make(map[int64]string),
		tempOrders: make(map[int64]TempOrderData),
		chatLocks:  make(map[int64]*sync.Mutex),
	}
}

// --- Управление состоянием пользователя ---

// GetState возвращает текущее состояние пользователя или STATE_IDLE, если сессии нет.
func (sm *SessionManager) GetState(chatID int64) string {
	sm.userStateMutex.RLock()
	defer sm.userStateMutex.RUnlock()
	state, ok := sm.userStates[chatID]
	if !ok {
		return constants.STATE_IDLE
	}
	return state
}

// SetState устанавливает новое состояние для пользователя.
func (sm *SessionManager) SetState(chatID int64, state string) {
	sm.userStateMutex.Lock()
	defer sm.userStateMutex.Unlock()
	if state == constants.STATE_IDLE {
		delete(sm.userStates, chatID)
	} else {
		sm.userStates[chatID] = state
	}
	log.Printf("SessionManager.SetState: Состояние для chatID %d установлено: %s", chatID, state)
}

// ClearState сбрасывает состояние пользователя к STATE_IDLE.
func (sm *SessionManager) ClearState(chatID int64) {
	sm.userStateMutex.Lock()
	defer sm.userStateMutex.Unlock()
	delete(sm.userStates, chatID)
	log.Printf("SessionManager.ClearState: Состояние для chatID %d очищено (установлено в IDLE).", chatID)
}

// --- Управление временными заявками ---

// GetTempOrder возвращает накопленные данные заявки. Если их нет, возвращает пустые.
func (sm *SessionManager) GetTempOrder(chatID int64) TempOrderData {
	sm.tempOrdersMutex.RLock()
	defer sm.tempOrdersMutex.RUnlock()
	order, exists := sm.tempOrders[chatID]
	if !exists {
		return NewTempOrder(chatID)
	}
	return order
}

// HasTempOrder сообщает, есть ли у пользователя накопленные данные заявки.
func (sm *SessionManager) HasTempOrder(chatID int64) bool {
	sm.tempOrdersMutex.RLock()
	defer sm.tempOrdersMutex.RUnlock()
	_, exists := sm.tempOrders[chatID]
	return exists
}

// UpdateTempOrder обновляет временные данные заявки для пользователя.
func (sm *SessionManager) UpdateTempOrder(chatID int64, orderData TempOrderData) {
	sm.tempOrdersMutex.Lock()
	defer sm.tempOrdersMutex.Unlock()
	sm.tempOrders[chatID] = orderData
}

// ClearTempOrder удаляет временные данные заявки для пользователя.
func (sm *SessionManager) ClearTempOrder(chatID int64) {
	sm.tempOrdersMutex.Lock()
	defer sm.tempOrdersMutex.Unlock()
	delete(sm.tempOrders, chatID)
}

// Reset полностью завершает сессию: состояние IDLE, данные заявки удалены.
func (sm *SessionManager) Reset(chatID int64) {
	sm.ClearState(chatID)
	sm.ClearTempOrder(chatID)
}

// ActiveSessions возвращает число пользователей посреди диалога.
func (sm *SessionManager) ActiveSessions() int {
	sm.userStateMutex.RLock()
	defer sm.userStateMutex.RUnlock()
	return len(sm.userStates)
}

// --- Последовательная обработка сообщений ---

// LockChat блокирует обработку сообщений пользователя и возвращает функцию разблокировки.
func (sm *SessionManager) LockChat(chatID int64) func() {
	sm.chatLocksMutex.Lock()
	chatMutex, exists := sm.chatLocks[chatID]
	if !exists {
		chatMutex = &sync.Mutex{}
		sm.chatLocks[chatID] = chatMutex
	}
	sm.chatLocksMutex.Unlock()

	chatMutex.Lock()
	return chatMutex.Unlock
}

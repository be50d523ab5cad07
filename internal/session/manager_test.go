package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"intakebot/internal/constants"
)

func TestSessionManager_StateLifecycle(t *testing.T) {
	sm := NewSessionManager()

	assert.Equal(t, constants.STATE_IDLE, sm.GetState(1))
	assert.Equal(t, 0, sm.ActiveSessions())

	sm.SetState(1, constants.STATE_AWAITING_NAME)
	assert.Equal(t, constants.STATE_AWAITING_NAME, sm.GetState(1))
	assert.Equal(t, constants.STATE_IDLE, sm.GetState(2))
	assert.Equal(t, 1, sm.ActiveSessions())

	sm.SetState(1, constants.STATE_IDLE)
	assert.Equal(t, constants.STATE_IDLE, sm.GetState(1))
	assert.Equal(t, 0, sm.ActiveSessions())
}

func TestSessionManager_TempOrder(t *testing.T) {
	sm := NewSessionManager()

	assert.False(t, sm.HasTempOrder(5))
	empty := sm.GetTempOrder(5)
	assert.Equal(t, int64(5), empty.RequesterID)
	assert.Empty(t, empty.Name)
	// GetTempOrder не создает запись
	assert.False(t, sm.HasTempOrder(5))

	data := empty
	data.Name = "Al"
	sm.UpdateTempOrder(5, data)
	sm.SetState(5, constants.STATE_AWAITING_TASK)
	assert.True(t, sm.HasTempOrder(5))
	assert.Equal(t, "Al", sm.GetTempOrder(5).Name)

	sm.Reset(5)
	assert.False(t, sm.HasTempOrder(5))
	assert.Equal(t, constants.STATE_IDLE, sm.GetState(5))
}

func TestSessionManager_LockChatSerializes(t *testing.T) {
	sm := NewSessionManager()

	var (
		wg      sync.WaitGroup
		counter int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := sm.LockChat(10)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter)

	// Разные чаты не блокируют друг друга
	unlockA := sm.LockChat(1)
	unlockB := sm.LockChat(2)
	unlockB()
	unlockA()
}

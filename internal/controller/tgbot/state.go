package tgbot

import "sync"

// DialogState текущий шаг диалога в чате
type DialogState string

const (
	StateNone          DialogState = ""
	StateAwaitingGroup DialogState = "awaiting_group"
)

// StateManager хранит состояние диалога по chatID
type StateManager struct {
	mu     sync.RWMutex
	states map[int64]DialogState
}

func NewStateManager() *StateManager {
	return &StateManager{
		states: make(map[int64]DialogState),
	}
}

// Get текущее состояние чата
func (m *StateManager) Get(chatID int64) DialogState {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.states[chatID]
}

// Set устанавливает состояние. StateNone удаляет запись.
func (m *StateManager) Set(chatID int64, state DialogState) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if state == StateNone {
		delete(m.states, chatID)
		return
	}
	m.states[chatID] = state
}

// Clear сбрасывает диалог и возвращает предыдущее состояние
func (m *StateManager) Clear(chatID int64) DialogState {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.states[chatID]
	delete(m.states, chatID)
	return prev
}

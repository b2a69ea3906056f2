package chat

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionManager(t *testing.T) {
	t.Parallel()

	t.Run("idle user has no draft", func(t *testing.T) {
		m := NewSessionManager()
		require.Nil(t, m.Get(1))
	})

	t.Run("start creates and returns the draft", func(t *testing.T) {
		m := NewSessionManager()
		d := m.Start(1, FlowTransaction, StepCategory)
		require.NotNil(t, d)
		require.Equal(t, FlowTransaction, d.Flow)
		require.Equal(t, StepCategory, d.Step)
		require.Same(t, d, m.Get(1))
	})

	t.Run("start discards the prior draft", func(t *testing.T) {
		m := NewSessionManager()
		first := m.Start(1, FlowTransaction, StepCategory)
		first.Category = "Еда"

		second := m.Start(1, FlowBudget, StepKind)
		require.NotSame(t, first, second)
		require.Equal(t, FlowBudget, m.Get(1).Flow)
		require.Empty(t, m.Get(1).Category)
	})

	t.Run("clear returns the user to idle", func(t *testing.T) {
		m := NewSessionManager()
		m.Start(1, FlowTransaction, StepCategory)
		m.Clear(1)
		require.Nil(t, m.Get(1))
	})

	t.Run("drafts are per user", func(t *testing.T) {
		m := NewSessionManager()
		m.Start(1, FlowTransaction, StepCategory)
		m.Start(2, FlowBudget, StepKind)

		require.Equal(t, FlowTransaction, m.Get(1).Flow)
		require.Equal(t, FlowBudget, m.Get(2).Flow)

		m.Clear(1)
		require.Nil(t, m.Get(1))
		require.NotNil(t, m.Get(2))
	})

	t.Run("concurrent access is safe", func(t *testing.T) {
		m := NewSessionManager()
		var wg sync.WaitGroup
		for i := range 50 {
			wg.Add(1)
			go func(userID int64) {
				defer wg.Done()
				m.Start(userID, FlowTransaction, StepCategory)
				m.Get(userID)
				m.Clear(userID)
			}(int64(i))
		}
		wg.Wait()
	})
}

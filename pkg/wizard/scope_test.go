package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Astreocclu/pool-visualizer/pkg/store"
)

func TestScopeFlowFullPath(t *testing.T) {
	flow := NewScopeFlow(store.DefaultScope())

	require.NoError(t, flow.AnswerBool(true)) // windows
	assert.Equal(t, PromptWindowCount, flow.Prompt())
	require.NoError(t, flow.AnswerCount(6))

	require.NoError(t, flow.AnswerBool(true)) // doors
	assert.Equal(t, PromptDoorType, flow.Prompt())
	require.NoError(t, flow.AnswerDoorType("french"))
	require.NoError(t, flow.AnswerCount(2))

	require.NoError(t, flow.AnswerBool(true)) // patio
	require.True(t, flow.Done())

	scope := flow.Scope()
	assert.Equal(t, 6, scope.WindowCount)
	assert.Equal(t, "french", scope.DoorType)
	assert.Equal(t, 2, scope.DoorCount)
	assert.True(t, scope.HasPatio)
}

func TestScopeFlowNoAnswersSkipFollowUps(t *testing.T) {
	flow := NewScopeFlow(store.Scope{HasWindows: true, WindowCount: 3, HasDoors: true, DoorType: "sliding_glass", DoorCount: 1})

	require.NoError(t, flow.AnswerBool(false)) // windows
	assert.Equal(t, PromptHasDoors, flow.Prompt())
	require.NoError(t, flow.AnswerBool(false)) // doors
	assert.Equal(t, PromptHasPatio, flow.Prompt())
	require.NoError(t, flow.AnswerBool(false)) // patio
	require.True(t, flow.Done())

	// A no clears the stale follow-up answers.
	scope := flow.Scope()
	assert.False(t, scope.HasWindows)
	assert.Zero(t, scope.WindowCount)
	assert.False(t, scope.HasDoors)
	assert.Empty(t, scope.DoorType)
	assert.Zero(t, scope.DoorCount)
	assert.False(t, scope.HasPatio)
}

func TestScopeFlowRejectsWrongAnswerType(t *testing.T) {
	flow := NewScopeFlow(store.DefaultScope())

	assert.Error(t, flow.AnswerCount(3))
	assert.Error(t, flow.AnswerDoorType("sliding_glass"))
	assert.Equal(t, PromptHasWindows, flow.Prompt())
}

func TestScopeFlowRejectsNegativeCount(t *testing.T) {
	flow := NewScopeFlow(store.DefaultScope())

	require.NoError(t, flow.AnswerBool(true))
	assert.Error(t, flow.AnswerCount(-1))
	assert.Equal(t, PromptWindowCount, flow.Prompt())
}

func TestScopeFlowRejectsUnknownDoorType(t *testing.T) {
	flow := NewScopeFlow(store.DefaultScope())

	require.NoError(t, flow.AnswerBool(true))
	require.NoError(t, flow.AnswerCount(2))
	require.NoError(t, flow.AnswerBool(true))

	assert.Error(t, flow.AnswerDoorType("revolving"))
	assert.Equal(t, PromptDoorType, flow.Prompt())
}

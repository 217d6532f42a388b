package expressions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	e := NewEvaluator()

	data := map[string]any{
		"results": []any{
			map[string]any{"id": 1.0, "status": "complete"},
			map[string]any{"id": 2.0, "status": "pending"},
		},
	}

	result, err := e.Evaluate("results[0].status", data)
	require.NoError(t, err)
	assert.Equal(t, "complete", result)

	result, err = e.Evaluate("length(results)", data)
	require.NoError(t, err)
	assert.Equal(t, 2.0, result)
}

func TestEvaluateInvalidExpression(t *testing.T) {
	e := NewEvaluator()

	_, err := e.Evaluate("results[", map[string]any{})
	assert.Error(t, err)
	assert.Error(t, e.Validate("results["))
	assert.NoError(t, e.Validate("results[0]"))
}

func TestEvaluateValueHandlesStructs(t *testing.T) {
	e := NewEvaluator()

	value := struct {
		Status string `json:"status"`
	}{Status: "failed"}

	result, err := e.EvaluateValue("status", value)
	require.NoError(t, err)
	assert.Equal(t, "failed", result)
}

func TestEvaluateStringFormatsNonStrings(t *testing.T) {
	e := NewEvaluator()

	out, err := e.EvaluateString("count", map[string]any{"count": 3.0})
	require.NoError(t, err)
	assert.Equal(t, "3", out)

	out, err = e.EvaluateString("missing", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestEvaluatorCachesCompiledExpressions(t *testing.T) {
	e := NewEvaluator()

	_, err := e.Evaluate("status", map[string]any{"status": "ok"})
	require.NoError(t, err)
	_, err = e.Evaluate("status", map[string]any{"status": "ok"})
	require.NoError(t, err)

	e.mu.RLock()
	defer e.mu.RUnlock()
	assert.Len(t, e.cache, 1)
}

// Package expressions wraps JMESPath evaluation for output filtering.
package expressions

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jmespath/go-jmespath"
)

// Evaluator evaluates JMESPath expressions with a compiled-expression cache.
type Evaluator struct {
	cache map[string]*jmespath.JMESPath
	mu    sync.RWMutex
}

// NewEvaluator creates a new expression evaluator
func NewEvaluator() *Evaluator {
	return &Evaluator{
		cache: make(map[string]*jmespath.JMESPath),
	}
}

// Evaluate evaluates a JMESPath expression against data
func (e *Evaluator) Evaluate(expression string, data interface{}) (interface{}, error) {
	compiled, err := e.getOrCompile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid expression %q: %w", expression, err)
	}

	result, err := compiled.Search(data)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate expression %q: %w", expression, err)
	}

	return result, nil
}

// EvaluateValue evaluates an expression against an arbitrary Go value by
// first round-tripping it through JSON. JMESPath only understands generic
// maps and slices, not typed structs.
func (e *Evaluator) EvaluateValue(expression string, v interface{}) (interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal value for expression %q: %w", expression, err)
	}

	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("failed to unmarshal value for expression %q: %w", expression, err)
	}

	return e.Evaluate(expression, generic)
}

// EvaluateString evaluates an expression and returns the result as a string
func (e *Evaluator) EvaluateString(expression string, data interface{}) (string, error) {
	result, err := e.Evaluate(expression, data)
	if err != nil {
		return "", err
	}

	if result == nil {
		return "", nil
	}

	str, ok := result.(string)
	if !ok {
		return fmt.Sprintf("%v", result), nil
	}

	return str, nil
}

// Validate checks if an expression is valid
func (e *Evaluator) Validate(expression string) error {
	_, err := e.getOrCompile(expression)
	return err
}

// getOrCompile retrieves a compiled expression from cache or compiles it
func (e *Evaluator) getOrCompile(expression string) (*jmespath.JMESPath, error) {
	e.mu.RLock()
	if compiled, ok := e.cache[expression]; ok {
		e.mu.RUnlock()
		return compiled, nil
	}
	e.mu.RUnlock()

	compiled, err := jmespath.Compile(expression)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.cache[expression] = compiled
	e.mu.Unlock()

	return compiled, nil
}

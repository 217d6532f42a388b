package wizard

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"

	"github.com/Astreocclu/pool-visualizer/pkg/store"
)

// ScopePrompt identifies the current question in the windows/doors/patio
// scope flow.
type ScopePrompt int

const (
	PromptHasWindows ScopePrompt = iota
	PromptWindowCount
	PromptHasDoors
	PromptDoorType
	PromptDoorCount
	PromptHasPatio
	PromptDone
)

func (p ScopePrompt) String() string {
	switch p {
	case PromptHasWindows:
		return "has_windows"
	case PromptWindowCount:
		return "window_count"
	case PromptHasDoors:
		return "has_doors"
	case PromptDoorType:
		return "door_type"
	case PromptDoorCount:
		return "door_count"
	case PromptHasPatio:
		return "has_patio"
	case PromptDone:
		return "done"
	default:
		return "unknown"
	}
}

// ScopeFlow is the windows flow's local branching sub-machine: yes/no
// questions with follow-up counts, skipping follow-ups on a no.
type ScopeFlow struct {
	scope  store.Scope
	prompt ScopePrompt
}

// NewScopeFlow starts the flow at the windows question.
func NewScopeFlow(initial store.Scope) *ScopeFlow {
	return &ScopeFlow{scope: initial, prompt: PromptHasWindows}
}

// Prompt returns the pending question.
func (f *ScopeFlow) Prompt() ScopePrompt {
	return f.prompt
}

// Done reports whether every question has been answered.
func (f *ScopeFlow) Done() bool {
	return f.prompt == PromptDone
}

// Scope returns the accumulated answers.
func (f *ScopeFlow) Scope() store.Scope {
	return f.scope
}

// AnswerBool answers a yes/no prompt and advances, skipping follow-ups
// when the answer is no.
func (f *ScopeFlow) AnswerBool(answer bool) error {
	switch f.prompt {
	case PromptHasWindows:
		f.scope.HasWindows = answer
		if answer {
			f.prompt = PromptWindowCount
		} else {
			f.scope.WindowCount = 0
			f.prompt = PromptHasDoors
		}
	case PromptHasDoors:
		f.scope.HasDoors = answer
		if answer {
			f.prompt = PromptDoorType
		} else {
			f.scope.DoorType = ""
			f.scope.DoorCount = 0
			f.prompt = PromptHasPatio
		}
	case PromptHasPatio:
		f.scope.HasPatio = answer
		f.prompt = PromptDone
	default:
		return httperror.NewHTTPErrorf(http.StatusBadRequest, "prompt %s expects a different answer type", f.prompt)
	}
	return nil
}

// AnswerCount answers a count prompt and advances.
func (f *ScopeFlow) AnswerCount(count int) error {
	if count < 0 {
		return httperror.NewHTTPError(http.StatusBadRequest, "count cannot be negative")
	}

	switch f.prompt {
	case PromptWindowCount:
		f.scope.WindowCount = count
		f.prompt = PromptHasDoors
	case PromptDoorCount:
		f.scope.DoorCount = count
		f.prompt = PromptHasPatio
	default:
		return httperror.NewHTTPErrorf(http.StatusBadRequest, "prompt %s expects a different answer type", f.prompt)
	}
	return nil
}

// AnswerDoorType answers the door type prompt and advances.
func (f *ScopeFlow) AnswerDoorType(doorType string) error {
	if f.prompt != PromptDoorType {
		return httperror.NewHTTPErrorf(http.StatusBadRequest, "prompt %s expects a different answer type", f.prompt)
	}
	if !ValidOption("door_type", doorType) {
		return httperror.NewHTTPErrorf(http.StatusBadRequest, "%q is not a valid door type", doorType)
	}

	f.scope.DoorType = doorType
	f.prompt = PromptDoorCount
	return nil
}

package nodes

import (
	"testing"

	"github.com/kochi-guide/bot/internal/agent/model"
)

func TestNormalizeMaxToolCalls(t *testing.T) {
	if got := normalizeMaxToolCalls(0); got != DefaultMaxToolCalls {
		t.Errorf("normalizeMaxToolCalls(0) = %d, want %d", got, DefaultMaxToolCalls)
	}
	if got := normalizeMaxToolCalls(-3); got != DefaultMaxToolCalls {
		t.Errorf("normalizeMaxToolCalls(-3) = %d, want %d", got, DefaultMaxToolCalls)
	}
	if got := normalizeMaxToolCalls(4); got != 4 {
		t.Errorf("normalizeMaxToolCalls(4) = %d, want 4", got)
	}
}

func TestCheckAndMarkToolLimit(t *testing.T) {
	state := &model.AppState{ToolCallCount: 2}
	if checkAndMarkToolLimit(state, 3) {
		t.Error("limit marked below threshold")
	}

	state.ToolCallCount = 3
	if !checkAndMarkToolLimit(state, 3) {
		t.Error("limit not marked at threshold")
	}
	if !state.ToolCallLimitReached {
		t.Error("state flag not set")
	}

	// already marked: must not report marking again
	if checkAndMarkToolLimit(state, 3) {
		t.Error("limit marked twice")
	}
}

func TestIncrementToolCallAndCheck(t *testing.T) {
	state := &model.AppState{}
	for i := 1; i <= 2; i++ {
		if incrementToolCallAndCheck(state, 2) {
			t.Errorf("exceeded reported at call %d of 2", i)
		}
	}
	if !incrementToolCallAndCheck(state, 2) {
		t.Error("exceeded not reported past the limit")
	}
	if state.ToolCallCount != 3 {
		t.Errorf("count = %d, want 3", state.ToolCallCount)
	}
	if !state.ToolCallLimitReached {
		t.Error("state flag not set")
	}
}

package status

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spotkit/spotkit/internal/core/domain"
)

func TestStatusBar_Loading(t *testing.T) {
	sb := NewStatusBar(nil)
	sb.SetState(domain.StateSearching, 0, true)

	assert.Contains(t, sb.View(), "searching")
}

func TestStatusBar_ResultCount(t *testing.T) {
	sb := NewStatusBar(nil)
	sb.SetState(domain.StateShowingResults, 7, false)

	assert.Contains(t, sb.View(), "7 results")
}

func TestStatusBar_NoMatches(t *testing.T) {
	sb := NewStatusBar(nil)
	sb.SetState(domain.StateSearching, 0, false)

	assert.Contains(t, sb.View(), "no matches")
}

func TestStatusBar_Idle(t *testing.T) {
	sb := NewStatusBar(nil)
	sb.SetState(domain.StateIdle, 0, false)

	assert.Contains(t, sb.View(), "idle")
}

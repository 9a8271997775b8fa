package social

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyEventUsesTableDelta(t *testing.T) {
	comp := NewComponent("", nil)
	comp = ApplyEvent(comp, "Attacked", 1)
	assert.Equal(t, -40, comp.Disposition)
	assert.Equal(t, "Attacked", comp.EventLog[0].Kind)
}

func TestApplyEventUnknownKindIsZeroDelta(t *testing.T) {
	comp := NewComponent("", nil)
	comp = ApplyEvent(comp, "SomeUnmappedEvent", 1)
	assert.Equal(t, 0, comp.Disposition)
	assert.Len(t, comp.EventLog, 1)
}

package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportOKWhenEmpty(t *testing.T) {
	var r Report
	assert.True(t, r.OK())
}

func TestAddAppendsFormattedEvent(t *testing.T) {
	var r Report
	r.Add(ConfigError, "bad value %d", 42)
	assert.False(t, r.OK())
	assert.Equal(t, "bad value 42", r.Events[0].Message)
	assert.Equal(t, ConfigError, r.Events[0].Kind)
}

func TestCountOfFiltersByKind(t *testing.T) {
	var r Report
	r.Add(ConfigError, "a")
	r.Add(EmptyInput, "b")
	r.Add(ConfigError, "c")
	assert.Equal(t, 2, r.CountOf(ConfigError))
	assert.Equal(t, 1, r.CountOf(EmptyInput))
	assert.Equal(t, 0, r.CountOf(TopologyBroken))
}

func TestMergeCombinesEvents(t *testing.T) {
	var a, b Report
	a.Add(ConfigError, "a")
	b.Add(EmptyInput, "b")
	a.Merge(b)
	assert.Len(t, a.Events, 2)
}

package interrupt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredefinedCodes(t *testing.T) {
	assert.EqualValues(t, 0, InvalidInstruction)
	assert.EqualValues(t, 1, InvalidMemoryLocation)
	assert.EqualValues(t, 2, DivisionByZero)
	assert.EqualValues(t, 3, TimerInterrupt)
	assert.EqualValues(t, 4, InvalidWorldCommand)
	assert.EqualValues(t, 5, WorldEvent)
	assert.EqualValues(t, 6, SoftwareInterrupt)
}

func TestNames(t *testing.T) {
	assert.Len(t, Names, 7)
	assert.Equal(t, "DivisionByZero", Names[DivisionByZero])
}

func TestNew(t *testing.T) {
	in := New(SoftwareInterrupt)
	assert.Equal(t, Interrupt{Code: SoftwareInterrupt}, in)
}

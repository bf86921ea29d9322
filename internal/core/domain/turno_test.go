package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotHour(t *testing.T) {
	assert.Equal(t, 8, SlotHour("08:00"))
	assert.Equal(t, 20, SlotHour("20:00"))
	assert.Equal(t, -1, SlotHour("bad"))
	assert.True(t, IsSlot("15:00"))
	assert.False(t, IsSlot("13:00"))
}

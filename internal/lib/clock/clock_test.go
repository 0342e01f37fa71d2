package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDay(t *testing.T) {
	moment := time.Date(2025, 3, 15, 17, 42, 13, 999, time.FixedZone("CET", 3600))
	got := Day(moment)

	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestFixed(t *testing.T) {
	moment := time.Date(2025, 3, 15, 23, 59, 0, 0, time.UTC)
	clk := Fixed(moment)

	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), clk.Today())
	// Повторный вызов возвращает ту же дату
	assert.Equal(t, clk.Today(), clk.Today())
}

func TestSystemClock(t *testing.T) {
	got := SystemClock{}.Today()

	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, 0, got.Minute())
	assert.Equal(t, time.UTC, got.Location())
}

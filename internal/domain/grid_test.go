package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/Barberia-BookingService/pkg/types"
)

func TestGenerateGrid_DefaultBusinessDay(t *testing.T) {
	// Сетка салона: 10:00-21:00 с шагом 40 минут: ровно 17 слотов
	grid := GenerateGrid(DefaultOpenTime, DefaultCloseTime, DefaultSlotStep)

	require.Len(t, grid, 17)
	assert.Equal(t, "10:00", grid[0].String())
	assert.Equal(t, "10:40", grid[1].String())
	assert.Equal(t, "20:40", grid[16].String())

	// Сетка строго возрастает
	for i := 1; i < len(grid); i++ {
		assert.True(t, grid[i-1].Before(grid[i]))
	}
}

func TestGenerateGrid_CloseOnStep(t *testing.T) {
	// Если время закрытия попадает ровно на шаг, оно включается
	open, _ := types.ParseTimeOfDay("10:00")
	close, _ := types.ParseTimeOfDay("12:00")

	grid := GenerateGrid(open, close, 30)

	require.Len(t, grid, 5)
	assert.Equal(t, "12:00", grid[len(grid)-1].String())
}

func TestGenerateGrid_CloseOffStep(t *testing.T) {
	open, _ := types.ParseTimeOfDay("10:00")
	close, _ := types.ParseTimeOfDay("11:50")

	grid := GenerateGrid(open, close, 40)

	require.Len(t, grid, 3)
	assert.Equal(t, "11:20", grid[len(grid)-1].String())
}

func TestGenerateGrid_Degenerate(t *testing.T) {
	open, _ := types.ParseTimeOfDay("10:00")
	close, _ := types.ParseTimeOfDay("09:00")

	assert.Empty(t, GenerateGrid(open, close, 40))
	assert.Empty(t, GenerateGrid(close, open, 0))

	// Открытие равно закрытию: единственный слот
	assert.Len(t, GenerateGrid(open, open, 40), 1)
}

func TestGenerateGrid_Deterministic(t *testing.T) {
	first := GenerateGrid(DefaultOpenTime, DefaultCloseTime, DefaultSlotStep)
	second := GenerateGrid(DefaultOpenTime, DefaultCloseTime, DefaultSlotStep)
	assert.Equal(t, first, second)
}

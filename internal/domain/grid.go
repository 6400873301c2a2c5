package domain

import "github.com/dcastano/Barberia-BookingService/pkg/types"

// GenerateGrid строит каноническую сетку слотов рабочего дня: от времени
// открытия до времени закрытия с фиксированным шагом. Время закрытия
// включается, если попадает ровно на шаг (как в исходной сетке 10:00-21:00/40,
// где последний слот: 20:40, а 21:00 на шаг не попадает).
// Чистая функция трех аргументов, ошибок не возвращает.
func GenerateGrid(open, close types.TimeOfDay, stepMinutes int) []types.TimeOfDay {
	if stepMinutes <= 0 || close.Before(open) {
		return []types.TimeOfDay{}
	}

	grid := make([]types.TimeOfDay, 0, (close.Minutes()-open.Minutes())/stepMinutes+1)
	for current := open; !current.After(close); current = current.AddMinutes(stepMinutes) {
		grid = append(grid, current)
	}
	return grid
}

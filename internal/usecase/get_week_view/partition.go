package get_week_view

import (
	"github.com/dcastano/Barberia-BookingService/internal/domain"
	"github.com/dcastano/Barberia-BookingService/pkg/ptr"
	"github.com/dcastano/Barberia-BookingService/pkg/types"
)

// cellKey адрес ячейки сетки внутри одной недели
type cellKey struct {
	date    string
	minutes int
}

func cellOf(date string, tod types.TimeOfDay) cellKey {
	return cellKey{date: date, minutes: tod.Minutes()}
}

// buildWeekView собирает недельную сетку мастера. Строки: объединение
// времён недели, столбцы: дни. Каждая ячейка получает ровно одно
// состояние; приоритет: запись клиента > блокировка > открытый слот.
// Время, которого нет в сетке конкретного дня, отображается как
// unmaterialized: оно не предлагается, но и не "закрыто администратором"
func buildWeekView(rng domain.WeekRange, times []types.TimeOfDay, slots []*domain.AvailabilitySlot, appointments []*domain.Appointment) []DayView {
	blocked := make(map[cellKey]bool, len(slots))
	materialized := make(map[cellKey]bool, len(slots))
	for _, slot := range slots {
		key := cellOf(slot.Date.Format(domain.DateFormat), slot.Time)
		materialized[key] = true
		if slot.Blocked {
			blocked[key] = true
		}
	}

	booked := make(map[cellKey]*domain.Appointment, len(appointments))
	for _, appt := range appointments {
		booked[cellOf(appt.Date.Format(domain.DateFormat), appt.Time)] = appt
	}

	days := make([]DayView, 0, len(domain.WeekDays))
	for i, day := range domain.WeekDays {
		date := rng.Start.AddDate(0, 0, i)
		dateStr := date.Format(domain.DateFormat)

		views := make([]SlotView, 0, len(times))
		for _, tod := range times {
			key := cellOf(dateStr, tod)
			view := SlotView{
				Time:    tod.String(),
				Display: tod.Display(),
			}

			switch {
			case booked[key] != nil:
				appt := booked[key]
				view.State = domain.SlotBooked
				view.AppointmentID = ptr.Ptr(appt.ID)
				view.ClientName = ptr.Ptr(appt.ClientName)
				view.Fixed = ptr.Ptr(appt.Fixed)
			case blocked[key]:
				view.State = domain.SlotBlocked
			case materialized[key]:
				view.State = domain.SlotOpen
			default:
				view.State = domain.SlotUnmaterialized
			}

			views = append(views, view)
		}

		days = append(days, DayView{Day: day, Date: dateStr, Slots: views})
	}

	return days
}

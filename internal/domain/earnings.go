package domain

import "time"

// EarningEntry строка недельной ведомости: одна оказанная услуга
type EarningEntry struct {
	ID          int64
	StaffID     int64
	Amount      float64
	Description string
	EntryDate   time.Time
	CreatedAt   time.Time
}

// WeekEarnings итог мастера за неделю
type WeekEarnings struct {
	StaffID    int64
	WeekStart  time.Time
	Total      float64
	Commission float64 // доля мастера по его commission_pct
}

// ArchivedWeek заархивированный итог недели после ролловера ведомости
type ArchivedWeek struct {
	ID         int64
	StaffID    int64
	WeekStart  time.Time
	Total      float64
	Commission float64
	ArchivedAt time.Time
}

package models

import (
	"time"

	"github.com/dcastano/Barberia-BookingService/internal/domain"
)

// Request модели

// AddEntryRequest запрос на добавление строки в ведомость
type AddEntryRequest struct {
	StaffID     int64   `json:"staffId"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// Response модели

// EntryResponse строка ведомости
type EntryResponse struct {
	ID          int64   `json:"id"`
	StaffID     int64   `json:"staffId"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	EntryDate   string  `json:"entryDate"`
}

// WeekSummaryResponse итог мастера за текущую неделю
type WeekSummaryResponse struct {
	StaffID    int64            `json:"staffId"`
	WeekStart  string           `json:"weekStart"`
	Total      float64          `json:"total"`
	Commission float64          `json:"commission"`
	Entries    []*EntryResponse `json:"entries"`
}

// RolloverResponse результат еженедельного закрытия ведомости
type RolloverResponse struct {
	WeekStart      string `json:"weekStart"`
	StaffArchived  int    `json:"staffArchived"`
	EntriesCleared int64  `json:"entriesCleared"`
}

// FromDomainEntry конвертирует строку ведомости в response
func FromDomainEntry(entry *domain.EarningEntry) *EntryResponse {
	return &EntryResponse{
		ID:          entry.ID,
		StaffID:     entry.StaffID,
		Amount:      entry.Amount,
		Description: entry.Description,
		EntryDate:   entry.EntryDate.Format(domain.DateFormat),
	}
}

// FromDomainEntries конвертирует строки ведомости в response
func FromDomainEntries(entries []*domain.EarningEntry) []*EntryResponse {
	out := make([]*EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, FromDomainEntry(e))
	}
	return out
}

// FormatWeekStart форматирует начало недели для ответа
func FormatWeekStart(weekStart time.Time) string {
	return weekStart.Format(domain.DateFormat)
}

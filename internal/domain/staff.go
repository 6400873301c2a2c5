package domain

import "time"

// StaffMember мастер барбершопа (или администратор)
type StaffMember struct {
	ID            int64
	Name          string
	Username      string
	Password      string // учетные данные хранятся как есть, хешированием занимается вызывающий слой
	Photo         *string
	Phone         *string
	IsAdmin       bool
	CommissionPct float64 // процент мастера от выручки, для недельной ведомости

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBookable сообщает, ведет ли сотрудник запись клиентов.
// Администратор записи не ведет и сетки слотов не имеет.
func (s *StaffMember) IsBookable() bool {
	return !s.IsAdmin
}

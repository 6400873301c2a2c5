package models

import (
	"time"

	"github.com/dcastano/Barberia-BookingService/internal/domain"
)

// Request модели

// CreateStaffRequest запрос на создание мастера
type CreateStaffRequest struct {
	Name          string  `json:"name"`
	Username      string  `json:"username"`
	Password      string  `json:"password"`
	Photo         *string `json:"photo,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	IsAdmin       bool    `json:"isAdmin"`
	CommissionPct float64 `json:"commissionPct"`
}

// ToDomain конвертирует request в доменную модель
func (r *CreateStaffRequest) ToDomain() *domain.StaffMember {
	return &domain.StaffMember{
		Name:          r.Name,
		Username:      r.Username,
		Password:      r.Password,
		Photo:         r.Photo,
		Phone:         r.Phone,
		IsAdmin:       r.IsAdmin,
		CommissionPct: r.CommissionPct,
	}
}

// UpdateStaffRequest запрос на обновление данных мастера
// Пустой пароль означает "не менять"
type UpdateStaffRequest struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Username      string  `json:"username"`
	Password      string  `json:"password,omitempty"`
	Photo         *string `json:"photo,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	CommissionPct float64 `json:"commissionPct"`
}

// AuthRequest запрос на аутентификацию
type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Response модели

// StaffResponse данные мастера (без учетных данных)
type StaffResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Username      string  `json:"username"`
	Photo         *string `json:"photo,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	IsAdmin       bool    `json:"isAdmin"`
	CommissionPct float64 `json:"commissionPct"`
	CreatedAt     string  `json:"createdAt"`
}

// StaffListResponse список мастеров
type StaffListResponse struct {
	Staff []*StaffResponse `json:"staff"`
}

// FromDomainStaff конвертирует доменную модель в response
func FromDomainStaff(member *domain.StaffMember) *StaffResponse {
	return &StaffResponse{
		ID:            member.ID,
		Name:          member.Name,
		Username:      member.Username,
		Photo:         member.Photo,
		Phone:         member.Phone,
		IsAdmin:       member.IsAdmin,
		CommissionPct: member.CommissionPct,
		CreatedAt:     member.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainStaffList конвертирует список доменных моделей в response
func FromDomainStaffList(members []*domain.StaffMember) *StaffListResponse {
	out := make([]*StaffResponse, 0, len(members))
	for _, m := range members {
		out = append(out, FromDomainStaff(m))
	}
	return &StaffListResponse{Staff: out}
}

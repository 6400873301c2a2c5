package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dcastano/Barberia-BookingService/internal/api/handlers"
	"github.com/dcastano/Barberia-BookingService/internal/domain"
)

// HeaderStaffID заголовок с идентификатором аутентифицированного мастера
const HeaderStaffID = "X-Staff-ID"

type contextKey string

const staffIDKey contextKey = "staffID"

// StaffProvider интерфейс для получения мастера (для проверки прав)
type StaffProvider interface {
	GetByID(ctx context.Context, id int64) (*domain.StaffMember, error)
}

// Auth проверяет наличие заголовка X-Staff-ID и кладет ID в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderStaffID)
		if raw == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "отсутствует заголовок X-Staff-ID")
			return
		}

		staffID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || staffID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, "некорректный заголовок X-Staff-ID")
			return
		}

		ctx := context.WithValue(r.Context(), staffIDKey, staffID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin пропускает только администраторов.
// Используется после Auth
func RequireAdmin(staff StaffProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			staffID, ok := StaffIDFromContext(r.Context())
			if !ok {
				handlers.RespondError(w, http.StatusUnauthorized, "отсутствует заголовок X-Staff-ID")
				return
			}

			member, err := staff.GetByID(r.Context(), staffID)
			if err != nil {
				handlers.RespondForbidden(w, "доступ запрещен")
				return
			}
			if !member.IsAdmin {
				handlers.RespondForbidden(w, "операция доступна только администратору")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// StaffIDFromContext возвращает ID мастера, положенный Auth middleware
func StaffIDFromContext(ctx context.Context) (int64, bool) {
	staffID, ok := ctx.Value(staffIDKey).(int64)
	return staffID, ok
}

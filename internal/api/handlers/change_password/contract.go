package change_password

import (
	"context"
)

type StaffService interface {
	UpdatePassword(ctx context.Context, id int64, password string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package dbmetrics

import "context"

type txContextKey struct{}

// WithExecutor кладет активный исполнитель транзакции в контекст.
// Репозитории достают его через GetExecutor и выполняют запросы
// внутри транзакции, не зная о ней явно.
func WithExecutor(ctx context.Context, executor DBExecutor) context.Context {
	return context.WithValue(ctx, txContextKey{}, executor)
}

// GetExecutor возвращает исполнитель из контекста, если там есть
// активная транзакция, иначе переданный по умолчанию
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if executor, ok := ctx.Value(txContextKey{}).(DBExecutor); ok {
		return executor
	}
	return fallback
}

// IsInTransaction сообщает, выполняется ли запрос внутри транзакции
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txContextKey{}).(DBExecutor)
	return ok
}

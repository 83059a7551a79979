package worker

import (
	"context"
)

// Worker - фоновый обработчик стрима
type Worker interface {
	// Start блокируется до Stop, отмены ctx или фатальной ошибки
	Start(ctx context.Context) error

	// Stop сигнализирует воркеру о завершении
	Stop() error

	// Name возвращает имя воркера
	Name() string
}

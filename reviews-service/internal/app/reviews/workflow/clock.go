package workflow

import "time"

// Clock абстрагирует системное время, чтобы движок переходов
// оставался детерминированным в тестах
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

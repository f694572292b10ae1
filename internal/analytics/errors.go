package analytics

import (
	"errors"
	"fmt"
)

// ErrNoData нет исторических строк для обучения
var ErrNoData = errors.New("no historical rows to fit")

// FormatError метка месяца не разбирается
type FormatError struct {
	Label  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid date format: %q (%s)", e.Label, e.Reason)
}

// ComputationError ошибка при обучении или применении модели
type ComputationError struct {
	Op  string
	Err error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("regression %s failed: %v", e.Op, e.Err)
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}

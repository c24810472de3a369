package availability

import "errors"

var (
	// ErrBusyFetch возвращается, когда один из источников занятости
	// недоступен - вызывающий может безопасно повторить запрос
	ErrBusyFetch = errors.New("availability: failed to fetch busy intervals")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)

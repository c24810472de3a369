package calendarsync

import "errors"

var (
	// ErrProviderNotLinked возвращается, когда у провайдера нет
	// подключённого внешнего календаря
	ErrProviderNotLinked = errors.New("calendarsync: provider has no linked calendar")

	// ErrInvalidResponse возвращается при некорректном ответе сервиса
	ErrInvalidResponse = errors.New("calendarsync: invalid response")

	// ErrServiceUnavailable возвращается, когда сервис синхронизации
	// недоступен после всех повторов
	ErrServiceUnavailable = errors.New("calendarsync: service unavailable")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("calendarsync: internal error")
)

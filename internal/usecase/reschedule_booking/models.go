package reschedule_booking

import "time"

// Request модель запроса на перенос бронирования
type Request struct {
	UID   string    // Внешний идентификатор бронирования
	Start time.Time // Новый UTC старт слота
}

// Response модель ответа с перенесённым бронированием
type Response struct {
	UID         string    // Внешний идентификатор бронирования
	ProviderID  int64     // ID провайдера
	EventTypeID int64     // ID типа события
	Start       time.Time // Новый UTC старт
	End         time.Time // Новый UTC конец
	Status      string    // Статус сохраняется при переносе
}

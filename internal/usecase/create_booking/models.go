package create_booking

import "time"

// AttendeeInput данные клиента, создающего бронирование
type AttendeeInput struct {
	Name     string  // Имя клиента
	Email    string  // Email для ссылок управления бронированием
	Phone    *string // Телефон (опционально)
	Timezone string  // IANA таймзона клиента
	Locale   string  // Локаль для сообщений (например, "en", "sr")
}

// Request модель запроса на создание бронирования
type Request struct {
	ProviderID  int64         // ID провайдера
	EventTypeID int64         // ID типа события
	Start       time.Time     // Запрошенный UTC старт слота
	Attendee    AttendeeInput // Данные клиента
}

// Response модель ответа с созданным бронированием
type Response struct {
	UID         string    // Внешний идентификатор бронирования
	ProviderID  int64     // ID провайдера
	EventTypeID int64     // ID типа события
	Start       time.Time // UTC старт
	End         time.Time // UTC конец (= старт + длительность)
	Status      string    // pending или accepted
	CreatedAt   time.Time // Время создания
}

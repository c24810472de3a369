package get_slots

import "time"

// Request модель запроса на получение доступных слотов
type Request struct {
	ProviderID  int64     // ID провайдера
	EventTypeID int64     // ID типа события
	From        time.Time // Начало UTC окна (включительно)
	To          time.Time // Конец UTC окна (исключительно)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	ProviderID  int64       // ID провайдера
	EventTypeID int64       // ID типа события
	From        time.Time   // Начало окна
	To          time.Time   // Конец окна
	Slots       []time.Time // Доступные старты слотов в UTC по возрастанию
}

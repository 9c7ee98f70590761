package delete_availability

// Request модель запроса на удаление окна доступности
type Request struct {
	WindowID   int64 // ID окна
	ProviderID int64 // ID провайдера (действующий пользователь)
}

// Response модель ответа с числом удалённых свободных слотов
type Response struct {
	DeletedSlots int64
}

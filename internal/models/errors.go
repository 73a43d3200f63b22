package models

import "errors"

// Таксономия ошибок ядра. Все они терминальны на границе HTTP -
// выше интерактивного цикла вызывающих нет.
var (
	// ErrPersistenceUnavailable - не удалось прочитать каталог или чек-лист;
	// восстанавливается повторной попыткой пользователя
	ErrPersistenceUnavailable = errors.New("persistence unavailable")

	// ErrMutationFailed - запись (осмотр/перенос/удаление/добавление/сброс)
	// не удалась; локальное состояние откатывается
	ErrMutationFailed = errors.New("mutation failed")

	// ErrAddressResolutionFailed - обратное геокодирование не дало адреса;
	// добавление переходит в ручной ввод адреса
	ErrAddressResolutionFailed = errors.New("address resolution failed")

	// ErrInvalidModeOperation - операция недопустима в текущем режиме
	// (например, сброс чек-листа вне режима осмотра)
	ErrInvalidModeOperation = errors.New("operation not allowed in current mode")

	// ErrConcurrentMutationRejected - уже есть незавершённая мутация;
	// повторная попытка игнорируется, не ставится в очередь
	ErrConcurrentMutationRejected = errors.New("another mutation is already in flight")

	// ErrAssetNotFound - объект отсутствует в каталоге сессии
	ErrAssetNotFound = errors.New("asset not found")

	// ErrSessionNotFound - сессия осмотра не найдена или истекла
	ErrSessionNotFound = errors.New("session not found")

	// ErrMutationNotFound - нет ожидающей мутации с таким id
	ErrMutationNotFound = errors.New("pending mutation not found")

	// ErrUserNotFound - учётная запись не найдена
	ErrUserNotFound = errors.New("user not found")

	// ErrExportForbidden - роль пользователя не даёт права на выгрузку
	// чек-листа этой команды
	ErrExportForbidden = errors.New("export is not allowed for this team")
)

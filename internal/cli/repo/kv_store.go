package repo

import "errors"

// ErrNotFound возвращается GetItem, если ключ отсутствует в хранилище.
var ErrNotFound = errors.New("key not found")

// KeyTokenStorage фиксированный ключ, под которым хранится auth-токен.
const KeyTokenStorage = "auth_token"

// TrailingSpace обрезается с конца значения при чтении во всех реализациях.
const TrailingSpace = " \t\r\n"

// KeyValueStore описывает локальное key-value хранилище клиента.
type KeyValueStore interface {
	// GetItem возвращает значение по ключу или ErrNotFound.
	GetItem(key string) (string, error)
	// SetItem записывает значение, перезаписывая предыдущее.
	SetItem(key, value string) error
	// RemoveItem удаляет ключ. Отсутствие ключа ошибкой не считается.
	RemoveItem(key string) error
}

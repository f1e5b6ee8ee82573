package utils

import "github.com/google/uuid"

// GenerateTrustedFileName возвращает случайный ключ для объектного хранилища.
// Имя никогда не строится из пользовательского ввода: исходное имя файла
// остаётся только отображаемым полем и не участвует в адресации.
func GenerateTrustedFileName() string {
	return uuid.NewString()
}

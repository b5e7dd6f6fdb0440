package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const orderIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

func GenerateNanoID() (string, error) {
	return gonanoid.New()
}

// GenerateOrderID возвращает 16-символьный алфавитно-цифровой идентификатор,
// который помещается в сид адреса сделки.
func GenerateOrderID() (string, error) {
	return gonanoid.Generate(orderIDAlphabet, 16)
}

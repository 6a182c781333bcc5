package service

import (
	"crypto/rand"
	"fmt"
)

const publicIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewPublicID генерирует внешний идентификатор вида TAG-XXXXXXXX.
// Суффикс — от 8 до 10 случайных символов [A-Z0-9] из криптографического
// источника. Уникальность здесь не проверяется: пространство 36^8 делает
// коллизию пренебрежимо вероятной, авторитет — уникальный индекс в базе.
func NewPublicID(tag string) (string, error) {
	var lengthByte [1]byte
	if _, err := rand.Read(lengthByte[:]); err != nil {
		return "", fmt.Errorf("read random length: %w", err)
	}
	length := 8 + int(lengthByte[0])%3

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = publicIDAlphabet[int(b)%len(publicIDAlphabet)]
	}

	return tag + "-" + string(buf), nil
}

package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex — полный хэш в hex, ключ для таблиц кэша.
func SHA256Hex(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}

// ShortHash — первые 16 hex-символов SHA-256. Используется как имя файла
// в дисковом кэше структур и как секретный суффикс пути вебхука.
func ShortHash(s string) string {
	return SHA256Hex([]byte(s))[:16]
}

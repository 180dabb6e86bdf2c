package service

import (
	"strings"

	"github.com/google/uuid"
)

const codeLength = 16

// newCode генерирует код записи из 16 шестнадцатеричных символов
func newCode() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:codeLength]
}

package api

import (
	"strconv"

	"pocketledger/models"
)

func parseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parseType 交易类型，空字符串时返回 def
func parseType(s string, def models.TransactionType) (models.TransactionType, bool) {
	if s == "" {
		return def, true
	}
	t := models.TransactionType(s)
	return t, t.Valid()
}

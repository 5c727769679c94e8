package logger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Field constructors for ledger log entries

func TransactionID(id uuid.UUID) zap.Field {
	return zap.String("transaction_id", id.String())
}

func Direction(direction string) zap.Field {
	return zap.String("direction", direction)
}

func Amount(key string, amount decimal.Decimal) zap.Field {
	return zap.String(key, amount.String())
}

func Code(code string) zap.Field {
	return zap.String("code", code)
}

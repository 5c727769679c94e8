package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := map[string]string{
		"":                         "DESC",
		"ASC":                      "ASC",
		"asc":                      "ASC",
		"  asc  ":                  "ASC",
		"desc":                     "DESC",
		"sideways":                 "DESC",
		"ASC; DROP TABLE items;--": "DESC",
		"   ":                      "DESC",
	}

	for input, want := range tests {
		assert.Equal(t, want, ValidateSortOrder(input), "input %q", input)
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty uses default", "", "code"},
		{"whitelisted", "stock_yard", "stock_yard"},
		{"trimmed", "  name  ", "name"},
		{"case sensitive", "NAME", "code"},
		{"unknown column", "price", "code"},
		{"injection", "name; DROP TABLE items;--", "code"},
		{"quoted", "name'--", "code"},
		{"two words", "name desc", "code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateSortField(tt.input, ItemSortFields, "code"))
		})
	}

	assert.Equal(t, "", ValidateSortField("unknown", ItemSortFields, ""))
}

func TestOrderClause(t *testing.T) {
	assert.Equal(t, "transaction_date DESC", orderClause("", "", TradeTransactionSortFields, "transaction_date"))
	assert.Equal(t, "total ASC", orderClause("total", "asc", TradeTransactionSortFields, "transaction_date"))
	assert.Equal(t, "expense_date DESC", orderClause("stock_yard", "ASC;", ExpenseSortFields, "expense_date"))
	assert.Equal(t, "phone ASC", orderClause("phone", "ASC", PartySortFields, "name"))
}

func TestSortWhitelists(t *testing.T) {
	for name, fields := range map[string]map[string]bool{
		"items":        ItemSortFields,
		"parties":      PartySortFields,
		"transactions": TradeTransactionSortFields,
		"expenses":     ExpenseSortFields,
	} {
		t.Run(name, func(t *testing.T) {
			for _, common := range []string{"id", "created_at", "updated_at"} {
				assert.True(t, fields[common], common)
			}
			for field := range fields {
				assert.NotContains(t, field, " ")
				assert.NotContains(t, field, ";")
			}
		})
	}
}

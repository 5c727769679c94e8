package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	t.Run("creates item with zero stock", func(t *testing.T) {
		item, err := NewItem(" KTN-01 ", "Katun Jepang")
		require.NoError(t, err)
		assert.Equal(t, "KTN-01", item.Code)
		assert.Equal(t, "Katun Jepang", item.Name)
		assert.True(t, item.StockYard.IsZero())
		assert.True(t, item.StockRoll.IsZero())
	})

	t.Run("fails without code", func(t *testing.T) {
		item, err := NewItem("  ", "Katun")
		assert.Nil(t, item)
		assert.ErrorIs(t, err, ErrItemCodeRequired)
	})

	t.Run("fails without name", func(t *testing.T) {
		_, err := NewItem("KTN-01", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "name")
	})
}

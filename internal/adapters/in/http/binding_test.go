package http

import (
	"testing"

	"gromart/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalMoney(t *testing.T) {
	t.Run("empty string is zero", func(t *testing.T) {
		m, err := optionalMoney("")
		require.NoError(t, err)
		assert.True(t, m.IsZero())
	})

	t.Run("parses decimal string", func(t *testing.T) {
		m, err := optionalMoney("45.50")
		require.NoError(t, err)
		assert.Equal(t, "45.5", m.String())
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := optionalMoney("-1")
		assert.Error(t, err)
	})
}

func TestOptionalUUID(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		id, err := optionalUUID("order_id", nil)
		require.NoError(t, err)
		assert.Nil(t, id)
	})

	t.Run("empty string stays nil", func(t *testing.T) {
		empty := ""
		id, err := optionalUUID("order_id", &empty)
		require.NoError(t, err)
		assert.Nil(t, id)
	})

	t.Run("parses valid id", func(t *testing.T) {
		want := kernel.NewUUID()
		raw := want.String()
		id, err := optionalUUID("order_id", &raw)
		require.NoError(t, err)
		require.NotNil(t, id)
		assert.True(t, id.IsEqual(want))
	})

	t.Run("rejects malformed id", func(t *testing.T) {
		raw := "not-a-uuid"
		_, err := optionalUUID("order_id", &raw)
		assert.Error(t, err)
	})
}

func TestParsePositiveInt(t *testing.T) {
	t.Run("parses positive value", func(t *testing.T) {
		v, err := parsePositiveInt("limit", "25")
		require.NoError(t, err)
		assert.Equal(t, 25, v)
	})

	t.Run("rejects zero", func(t *testing.T) {
		_, err := parsePositiveInt("limit", "0")
		assert.Error(t, err)
	})

	t.Run("rejects non-numeric", func(t *testing.T) {
		_, err := parsePositiveInt("limit", "many")
		assert.Error(t, err)
	})
}

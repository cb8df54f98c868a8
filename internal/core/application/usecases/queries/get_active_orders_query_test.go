package queries_test

import (
	"testing"

	"gromart/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetActiveOrdersQuery_Valid(t *testing.T) {
	query := queries.NewGetActiveOrdersQuery()
	err := query.Validate()
	require.NoError(t, err)
}

func TestGetActiveOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetActiveOrdersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetActiveOrdersQueryIsNotConstructed)
}

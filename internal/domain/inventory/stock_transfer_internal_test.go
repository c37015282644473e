package inventory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/jhoicas/fulfillment-api/internal/domain"
)

func TestPartialFailure_AgregaMensajes(t *testing.T) {
	execErrs := multierr.Combine(
		errors.New("unstock var-1 en loc-a: sin stock"),
		errors.New("restock var-2 en loc-b: sin conexión"),
	)

	err := partialFailure(execErrs)
	require.ErrorIs(t, err, ErrPartialFailure)
	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, domain.ErrorTypeFailure, de.Type)
	assert.Contains(t, de.Description, "conciliación manual")
	assert.Contains(t, de.Description, "unstock var-1 en loc-a: sin stock; restock var-2 en loc-b: sin conexión")
}

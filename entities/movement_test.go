package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedDelta(t *testing.T) {
	delta, err := ActionStockIn.SignedDelta(15)
	require.NoError(t, err)
	assert.Equal(t, 15, delta)

	delta, err = ActionSale.SignedDelta(15)
	require.NoError(t, err)
	assert.Equal(t, -15, delta)

	delta, err = ActionManualRemoval.SignedDelta(4)
	require.NoError(t, err)
	assert.Equal(t, -4, delta)

	_, err = MovementAction("donate").SignedDelta(4)
	var validationErr ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestIsDebit(t *testing.T) {
	assert.False(t, ActionStockIn.IsDebit())
	assert.True(t, ActionSale.IsDebit())
	assert.True(t, ActionManualRemoval.IsDebit())
}

func TestParseMovementAction(t *testing.T) {
	action, err := ParseMovementAction("stock_in")
	require.NoError(t, err)
	assert.Equal(t, ActionStockIn, action)

	action, err = ParseMovementAction("sale")
	require.NoError(t, err)
	assert.Equal(t, ActionSale, action)

	action, err = ParseMovementAction("manual_removal")
	require.NoError(t, err)
	assert.Equal(t, ActionManualRemoval, action)

	_, err = ParseMovementAction("SALE")
	var validationErr ValidationError
	require.ErrorAs(t, err, &validationErr)
}

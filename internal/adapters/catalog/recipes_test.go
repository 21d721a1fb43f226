package catalog_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/adapters/catalog"
)

func indexOf(values []string, value string) int {
	for i, v := range values {
		if v == value {
			return i
		}
	}
	return -1
}

func TestRecipeGraph_ProductionOrderOfDefaultCatalog(t *testing.T) {
	// Arrange
	cat, err := catalog.LoadDefault()
	require.NoError(t, err)

	// Act
	rg, err := catalog.NewRecipeGraph(cat)
	require.NoError(t, err)
	order, err := rg.ProductionOrder()

	// Assert
	require.NoError(t, err)
	assert.Len(t, order, len(cat.Resources()))
	assert.Less(t, indexOf(order, "ice"), indexOf(order, "water"))
	assert.Less(t, indexOf(order, "water"), indexOf(order, "oxygen"))
	assert.Less(t, indexOf(order, "water"), indexOf(order, "hydrogen"))
	assert.Less(t, indexOf(order, "ore"), indexOf(order, "metal"))

	assert.Equal(t, []string{"ice", "ore"}, rg.Raw())
	assert.Equal(t, []string{"electrolyser"}, rg.Producers("water", "oxygen"))
	assert.Empty(t, rg.Cycles())
	assert.Len(t, rg.Recipes(), len(cat.ProcessingModules()))
}

func TestRecipeGraph_ReportsCycles(t *testing.T) {
	// Arrange
	cat, err := catalog.Parse([]byte(`
resources:
  - { id: water, name: Water, type: liquid }
  - { id: oxygen, name: Oxygen, type: liquid }
  - { id: ore, name: Ore }
modules:
  - { id: splitter, name: Splitter, kind: processing, inputs: [water], outputs: [oxygen], processing_rate: 1 }
  - { id: burner, name: Burner, kind: processing, inputs: [oxygen], outputs: [water], processing_rate: 1 }
  - { id: second-splitter, name: Splitter II, kind: processing, inputs: [water], outputs: [oxygen], processing_rate: 2 }
`))
	require.NoError(t, err)
	rg, err := catalog.NewRecipeGraph(cat)
	require.NoError(t, err)

	// Act
	_, orderErr := rg.ProductionOrder()

	// Assert
	require.Error(t, orderErr)
	assert.True(t, errors.Is(orderErr, catalog.ErrRecipeCycle))
	assert.Equal(t, [][]string{{"oxygen", "water"}}, rg.Cycles())
	assert.ElementsMatch(t, []string{"second-splitter", "splitter"}, rg.Producers("water", "oxygen"))
}

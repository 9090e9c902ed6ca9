package cart

import (
	"testing"

	"giftwrap_back_end/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddOrIncrementMergesSameKey(t *testing.T) {
	s := NewState()
	s.AddOrIncrement("Mug", 200, 1)
	s.AddOrIncrement("Mug", 200, 2)
	s.AddOrIncrement("Mug", 200, 1)

	require.Len(t, s.Items, 1)
	assert.Equal(t, 4, s.Items[0].Qty)
	assert.Len(t, s.Selected, 1)
}

func TestAddOrIncrementSamePriceDifferentName(t *testing.T) {
	s := NewState()
	s.AddOrIncrement("Mug", 200, 1)
	s.AddOrIncrement("Frame", 200, 1)
	s.AddOrIncrement("Mug", 150, 1) // même nom, autre prix : nouvelle ligne

	assert.Len(t, s.Items, 3)
	assert.Len(t, s.Selected, 3)
}

func TestAddOrIncrementDefaultsToOne(t *testing.T) {
	s := NewState()
	s.AddOrIncrement("Mug", 200, 0)
	require.Len(t, s.Items, 1)
	assert.Equal(t, 1, s.Items[0].Qty)
}

func TestChangeQtyRemovesWhenBelowOne(t *testing.T) {
	s := NewState()
	s.AddOrIncrement("Mug", 200, 2)
	s.AddOrIncrement("Frame", 300, 1)

	s.ChangeQty(0, -1)
	assert.Equal(t, 1, s.Items[0].Qty)

	s.ChangeQty(0, -1)
	require.Len(t, s.Items, 1)
	assert.Equal(t, "Frame", s.Items[0].Name)
	assert.Len(t, s.Selected, 1)
}

func TestChangeQtyLeavesOtherItemsUntouched(t *testing.T) {
	s := NewState()
	s.AddOrIncrement("Mug", 200, 2)
	s.AddOrIncrement("Frame", 300, 5)

	s.ChangeQty(0, 3)
	assert.Equal(t, 5, s.Items[0].Qty)
	assert.Equal(t, 5, s.Items[1].Qty)
	assert.Equal(t, "Frame", s.Items[1].Name)
}

func TestChangeQtyOutOfRangeIsNoop(t *testing.T) {
	s := NewState()
	s.AddOrIncrement("Mug", 200, 1)
	s.ChangeQty(-1, 1)
	s.ChangeQty(5, 1)
	assert.Equal(t, 1, s.Items[0].Qty)
}

func TestToggleSelectedTwiceRestoresState(t *testing.T) {
	s := NewState()
	s.AddOrIncrement("Mug", 200, 1)
	s.AddOrIncrement("Frame", 300, 1)
	s.ToggleSelected(1)

	before := append([]bool{}, s.Selected...)
	s.ToggleSelected(0)
	s.ToggleSelected(0)
	assert.Equal(t, before, s.Selected)
}

func TestToggleSelectedOutOfRangeIsNoop(t *testing.T) {
	s := NewState()
	s.AddOrIncrement("Mug", 200, 1)
	s.ToggleSelected(3)
	s.ToggleSelected(-1)
	assert.Equal(t, []bool{false}, s.Selected)
}

func TestRemoveSelected(t *testing.T) {
	s := NewState()
	s.AddOrIncrement("Mug", 200, 1)
	s.AddOrIncrement("Frame", 300, 2)
	s.AddOrIncrement("Card", 50, 1)
	s.ToggleSelected(0)
	s.ToggleSelected(2)

	removed := s.RemoveSelected()
	require.Len(t, removed, 2)
	assert.Equal(t, "Mug", removed[0].Name)
	assert.Equal(t, "Card", removed[1].Name)

	require.Len(t, s.Items, 1)
	assert.Equal(t, "Frame", s.Items[0].Name)
	assert.Equal(t, []bool{false}, s.Selected)
}

func TestRemoveItemsByKey(t *testing.T) {
	s := NewState()
	s.AddOrIncrement("Mug", 200, 1)
	s.AddOrIncrement("Frame", 300, 2)

	s.RemoveItems([]models.CartItem{{Name: "Mug", Price: 200, Qty: 1}})
	require.Len(t, s.Items, 1)
	assert.Equal(t, "Frame", s.Items[0].Name)

	// prix différent : la ligne reste
	s.RemoveItems([]models.CartItem{{Name: "Frame", Price: 999, Qty: 1}})
	assert.Len(t, s.Items, 1)
}

func TestRealignPadsAndTruncates(t *testing.T) {
	s := &State{Items: []models.CartItem{{Name: "Mug", Price: 200, Qty: 1}}}
	s.realign()
	assert.Equal(t, []bool{false}, s.Selected)

	s.Selected = []bool{true, true, false}
	s.realign()
	assert.Equal(t, []bool{true}, s.Selected)
}

package checkout

import (
	"testing"

	"giftwrap_back_end/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(name string, price float64, qty int) models.CartItem {
	return models.CartItem{Name: name, Price: price, Qty: qty}
}

func TestMergeSourcesIDWinsOnConflict(t *testing.T) {
	byEmail := []models.CartItem{item("Mug", 200, 1)}
	byID := []models.CartItem{item("Mug", 200, 3)}

	merged := MergeSources(byEmail, byID)
	require.Len(t, merged, 1)
	assert.Equal(t, 3, merged[0].Qty, "la version appariée par id doit l'emporter")
}

func TestMergeSourcesKeepsDistinctKeys(t *testing.T) {
	byEmail := []models.CartItem{item("Mug", 200, 1), item("Frame", 300, 1)}
	byID := []models.CartItem{item("Card", 50, 2), item("Mug", 150, 1)}

	merged := MergeSources(byEmail, byID)
	// "Mug" à 200 et "Mug" à 150 sont deux clés distinctes
	assert.Len(t, merged, 4)
}

func TestMergeSourcesDeterministicOrder(t *testing.T) {
	byEmail := []models.CartItem{item("B", 2, 1), item("A", 1, 1)}
	byID := []models.CartItem{item("C", 3, 1), item("A", 1, 5)}

	merged := MergeSources(byEmail, byID)
	require.Len(t, merged, 3)
	assert.Equal(t, "B", merged[0].Name)
	assert.Equal(t, "A", merged[1].Name)
	assert.Equal(t, 5, merged[1].Qty)
	assert.Equal(t, "C", merged[2].Name)
}

func TestTotalRoundsToTwoDecimals(t *testing.T) {
	assert.Equal(t, 350.0, Total([]models.CartItem{item("a", 100, 2), item("b", 50, 3)}))
	assert.Equal(t, 33.33, Total([]models.CartItem{item("a", 33.333, 1)}))
	assert.Equal(t, 0.0, Total(nil))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "350 BDT", FormatPrice(350))
	assert.Equal(t, "33.33 BDT", FormatPrice(33.33))
	assert.Equal(t, "0 BDT", FormatPrice(0))
	assert.Equal(t, "200 BDT", FormatPrice(200.00))
}

func TestReconcilerUpdateQty(t *testing.T) {
	r := NewReconciler([]models.CartItem{item("Mug", 200, 1), item("Frame", 300, 2)})

	r.UpdateQty(1, -1)
	assert.Equal(t, 1, r.Items()[1].Qty)

	// sous 1 : la ligne disparaît
	r.UpdateQty(1, -1)
	require.Len(t, r.Items(), 1)
	assert.Equal(t, "Mug", r.Items()[0].Name)

	// hors bornes : no-op
	r.UpdateQty(7, 1)
	assert.Len(t, r.Items(), 1)
}

func TestReconcilerRemoveAt(t *testing.T) {
	r := NewReconciler([]models.CartItem{item("Mug", 200, 1), item("Frame", 300, 2)})
	r.RemoveAt(0)
	require.Len(t, r.Items(), 1)
	assert.Equal(t, "Frame", r.Items()[0].Name)
}

func TestReconcilerCopiesInput(t *testing.T) {
	src := []models.CartItem{item("Mug", 200, 1)}
	r := NewReconciler(src)
	r.UpdateQty(0, 5)
	assert.Equal(t, 1, src[0].Qty, "la liste d'origine ne doit pas bouger")
}

func TestValidateSubmission(t *testing.T) {
	items := []models.CartItem{item("Mug", 200, 1)}

	assert.NoError(t, ValidateSubmission("Alice", "123 St", "555-0100", items))
	assert.ErrorIs(t, ValidateSubmission("", "123 St", "555-0100", items), ErrMissingFields)
	assert.ErrorIs(t, ValidateSubmission("Alice", "  ", "555-0100", items), ErrMissingFields)
	assert.ErrorIs(t, ValidateSubmission("Alice", "123 St", "", items), ErrMissingFields)
	assert.ErrorIs(t, ValidateSubmission("Alice", "123 St", "555-0100", nil), ErrNoItems)
}

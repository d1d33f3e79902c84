package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReceipt(t *testing.T) {
	text := `{
		"items": [
			{"name": "Burger", "price": 10, "quantity": 1},
			{"name": "Beer", "price": 8, "quantity": 2}
		],
		"subtotal": 26,
		"tax": 2.08,
		"total": 28.08
	}`

	receipt, err := parseReceipt(text)
	require.NoError(t, err)
	require.Len(t, receipt.Items, 2)
	assert.Equal(t, "Beer", receipt.Items[1].Name)
	assert.Equal(t, 8.0, receipt.Items[1].Price)
	assert.Equal(t, 2, receipt.Items[1].Quantity)
	assert.Equal(t, 26.0, receipt.Subtotal)
	assert.Equal(t, 2.08, receipt.Tax)
}

func TestParseReceiptRecoversJSONFromProse(t *testing.T) {
	text := "Here is the extracted receipt data:\n" +
		`{"items": [{"name": "Coffee", "price": 4.5, "quantity": 1}], "subtotal": 4.5, "tax": 0, "total": 4.5}` +
		"\nLet me know if you need anything else."

	receipt, err := parseReceipt(text)
	require.NoError(t, err)
	require.Len(t, receipt.Items, 1)
	assert.Equal(t, "Coffee", receipt.Items[0].Name)
}

func TestParseReceiptDefaultsQuantity(t *testing.T) {
	text := `{"items": [{"name": "Soup", "price": 6}], "subtotal": 6, "tax": 0, "total": 6}`

	receipt, err := parseReceipt(text)
	require.NoError(t, err)
	assert.Equal(t, 1, receipt.Items[0].Quantity)
}

func TestParseReceiptRejectsGarbage(t *testing.T) {
	for _, text := range []string{
		"I could not read this receipt.",
		"{not json at all}",
		"",
	} {
		_, err := parseReceipt(text)
		assert.Error(t, err, "input %q", text)
	}
}

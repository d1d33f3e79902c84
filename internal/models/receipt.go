package models

// ReceiptItem is a line item extracted from a scanned receipt.
type ReceiptItem struct {
	Name string `json:"name"`

	// Price is the unit price, not the line total. A receipt line
	// "2 Beers $16.00" yields {Name: "Beer", Price: 8, Quantity: 2}.
	Price float64 `json:"price"`

	Quantity int `json:"quantity"`
}

// ScannedReceipt is the contract the receipt-OCR collaborator satisfies.
// The numbers are used as initial item data for bill creation and are not
// validated for internal consistency; the user reviews them before creating
// the bill.
type ScannedReceipt struct {
	Items    []ReceiptItem `json:"items"`
	Subtotal float64       `json:"subtotal"`
	Tax      float64       `json:"tax"`
	Total    float64       `json:"total"`
}

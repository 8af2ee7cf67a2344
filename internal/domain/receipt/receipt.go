// Package receipt contains the receipt domain model and its structural
// validation. Amount and date fields stay textual here; parsing them is
// the points engine's concern.
package receipt

// Item is one purchased line entry on a receipt.
type Item struct {
	ShortDescription string `json:"shortDescription" validate:"required"`
	Price            string `json:"price"            validate:"required"`
}

// Receipt mirrors the wire schema accepted by POST /receipts/process.
type Receipt struct {
	Retailer     string `json:"retailer"     validate:"required"`
	PurchaseDate string `json:"purchaseDate" validate:"required"`
	PurchaseTime string `json:"purchaseTime" validate:"required"`
	Total        string `json:"total"        validate:"required"`
	Items        []Item `json:"items"        validate:"required,min=1,dive"`
}

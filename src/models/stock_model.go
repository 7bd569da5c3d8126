package models

const (
	JSONFieldProductID = "productId"
	JSONFieldQuantity  = "quantity"
)

// LineItem is a single (product, amount) pair within a bulk batch.
type LineItem struct {
	ProductID int `json:"productId"`
	Amount    int `json:"amount"`
}

// LineOutcome records whether one retrieval line item was satisfiable
// against the ledger state visible when it was evaluated. It only feeds the
// batch decision and is never persisted.
type LineOutcome struct {
	ProductID  int
	Sufficient bool
}

// StockLevel is the payload of a single-item stock lookup.
type StockLevel struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

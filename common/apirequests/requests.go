package apirequests

// BulkLineItem is one (productId, amount) pair within a bulk batch.
// Amount 0 is legal: restock accepts it outright and a zero-amount
// reservation is trivially satisfiable.
type BulkLineItem struct {
	ProductID int `json:"productId" validate:"required,gte=1"`
	Amount    int `json:"amount" validate:"gte=0"`
}

// BulkStockRequest carries the ordered line items of one retrieve or
// restock batch. The same productId may repeat.
type BulkStockRequest struct {
	Items []BulkLineItem `json:"items" validate:"required,min=1,dive"`
}

package domain

// Order and OrderItem are read here only to test purchase history; their
// lifecycle belongs to the order flows, not this service core.

// Order is a customer's order.
type Order struct {
	ID         int64 `json:"id"`
	CustomerID int64 `json:"customerId"`
}

// OrderItem links an order to a purchased product.
type OrderItem struct {
	ID        int64 `json:"id"`
	OrderID   int64 `json:"orderId"`
	ProductID int64 `json:"productId"`
}

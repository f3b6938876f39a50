package usecase

// Published to RabbitMQ through the outbox after a committed checkout.
type OrderCreatedMsg struct {
	OrderID  string `json:"orderId"`
	UserID   string `json:"userId"`
	Status   string `json:"status"`
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

// Sent by the fulfillment system on Kafka.
type OrderStatusChangedMsg struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
	Reason  string `json:"reason,omitempty"`
}

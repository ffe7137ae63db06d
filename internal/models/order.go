package models

import "time"

// OrderStatusConfirmed is the only status an order ever carries. Orders have
// no lifecycle beyond creation; extending this is out of scope by design.
const OrderStatusConfirmed = "Confirmed"

// Customer holds the shipping details captured at checkout.
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// Order is an immutable record created at checkout. Items is a snapshot of
// the cart at placement time and never aliases the live cart.
type Order struct {
	ID            string     `json:"id"`
	CreatedAt     time.Time  `json:"created_at"`
	Items         []CartLine `json:"items"`
	TotalINR      string     `json:"totalINR"`
	Customer      Customer   `json:"customer"`
	PaymentMethod string     `json:"payment_method"`
	Status        string     `json:"status"`
}

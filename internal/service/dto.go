package service

import "github.com/blayzex/storefront-api/internal/domain"

// PaymentConfirmation is the gateway checkout completion callback payload.
// The signature is the only proof the payment was captured; nothing else a
// client sends may mark an order as paid.
type PaymentConfirmation struct {
	GatewayOrderID string `json:"razorpay_order_id" binding:"required"`
	PaymentID      string `json:"razorpay_payment_id" binding:"required"`
	Signature      string `json:"razorpay_signature" binding:"required"`
}

// CustomerInfo carries the checkout form fields
type CustomerInfo struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	Pincode string `json:"pincode" binding:"required"`
}

func (c CustomerInfo) ToDomain() domain.CustomerDetails {
	return domain.CustomerDetails{
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Address: c.Address,
		City:    c.City,
		State:   c.State,
		Pincode: c.Pincode,
	}
}

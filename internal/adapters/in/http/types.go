package http

import "time"

// Request bodies. Money fields travel as decimal strings so clients never
// lose cents to floating point.

type addressPayload struct {
	Line1      string  `json:"line1"`
	Line2      string  `json:"line2,omitempty"`
	City       string  `json:"city"`
	State      string  `json:"state,omitempty"`
	PostalCode string  `json:"postal_code"`
	Phone      string  `json:"phone,omitempty"`
	Latitude   float64 `json:"latitude,omitempty"`
	Longitude  float64 `json:"longitude,omitempty"`
}

type orderItemPayload struct {
	ProductID *string `json:"product_id,omitempty"`
	Name      string  `json:"name"`
	ImageURL  string  `json:"image_url,omitempty"`
	Unit      string  `json:"unit"`
	UnitPrice string  `json:"unit_price"`
	MRP       string  `json:"mrp,omitempty"`
	Quantity  int     `json:"quantity"`
	Discount  string  `json:"discount,omitempty"`
}

type createOrderRequest struct {
	CustomerID    string             `json:"customer_id"`
	VendorID      string             `json:"vendor_id"`
	Address       addressPayload     `json:"address"`
	Items         []orderItemPayload `json:"items"`
	PaymentMethod string             `json:"payment_method"`
	Discount      string             `json:"discount,omitempty"`
	Tax           string             `json:"tax,omitempty"`
	Tip           string             `json:"tip,omitempty"`
}

type advanceOrderRequest struct {
	Action string `json:"action"`
}

type assignPartnerRequest struct {
	PartnerID string `json:"partner_id"`
}

type completeDeliveryRequest struct {
	Otp string `json:"otp"`
}

type cancelOrderRequest struct {
	Reason string `json:"reason"`
}

type allocateCreditRequest struct {
	Type        string  `json:"type"`
	Amount      string  `json:"amount"`
	Description string  `json:"description"`
	OrderID     *string `json:"order_id,omitempty"`
}

type submitBillRequest struct {
	OrderID      *string `json:"order_id,omitempty"`
	Amount       string  `json:"amount"`
	BillImageURL string  `json:"bill_image_url"`
	Description  string  `json:"description,omitempty"`
}

type reviewBillRequest struct {
	Decision string `json:"decision"`
	Notes    string `json:"notes,omitempty"`
}

// Response bodies.

type createdResponse struct {
	ID string `json:"id"`
}

type activeOrderResponse struct {
	ID         string    `json:"id"`
	Number     string    `json:"number"`
	Status     string    `json:"status"`
	CustomerID string    `json:"customer_id"`
	VendorID   string    `json:"vendor_id"`
	PartnerID  *string   `json:"partner_id,omitempty"`
	Total      string    `json:"total"`
	CreatedAt  time.Time `json:"created_at"`
}

type transactionResponse struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Amount       string    `json:"amount"`
	BalanceAfter string    `json:"balance_after"`
	Description  string    `json:"description,omitempty"`
	OrderID      *string   `json:"order_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type creditOutstandingResponse struct {
	PartnerID   string `json:"partner_id"`
	Outstanding string `json:"outstanding"`
}

type platformCreditOutstandingResponse struct {
	Outstanding string `json:"outstanding"`
}

type netToTransferResponse struct {
	PartnerID     string `json:"partner_id"`
	CashCollected string `json:"cash_collected"`
	ApprovedBills string `json:"approved_bills"`
	NetToTransfer string `json:"net_to_transfer"`
}

package service

// TrackOrderInput identifies an order by exactly one of three strategies,
// tried in priority order: OrderID, then OrderNumber, then Email.
type TrackOrderInput struct {
	Shop        string
	OrderID     string
	OrderNumber string
	Email       string
}

// CancelReasons are the values Shopify accepts for OrderCancelReason.
var CancelReasons = []string{"CUSTOMER", "DECLINED", "FRAUD", "INVENTORY", "OTHER"}

type CancelOrderInput struct {
	Shop           string
	OrderID        string
	OrderNumber    string
	Reason         string
	Restock        bool
	NotifyCustomer bool
	StaffNote      *string
}

// ShippingAddressInput is the partial address supplied by the caller.
// Nil fields are left unchanged upstream.
type ShippingAddressInput struct {
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	Address1     *string `json:"address1"`
	Address2     *string `json:"address2"`
	City         *string `json:"city"`
	ProvinceCode *string `json:"provinceCode"`
	CountryCode  *string `json:"countryCode"`
	Zip          *string `json:"zip"`
	Phone        *string `json:"phone"`
	Company      *string `json:"company"`
}

type UpdateShippingAddressInput struct {
	Shop            string
	OrderID         string
	ShippingAddress ShippingAddressInput
}

type ReturnLineItemInput struct {
	FulfillmentLineItemID string  `json:"fulfillmentLineItemId"`
	Quantity              int     `json:"quantity"`
	ReturnReason          *string `json:"returnReason"`
	CustomerNote          *string `json:"customerNote"`
}

type CreateReturnInput struct {
	Shop             string
	OrderID          string
	OrderNumber      string
	ReturnLineItems  []ReturnLineItemInput
	ReturnReasonNote *string
	NotifyCustomer   bool
}

type RefundLineItemInput struct {
	LineItemID  string  `json:"lineItemId"`
	Quantity    int     `json:"quantity"`
	RestockType *string `json:"restockType"`
	LocationID  *string `json:"locationId"`
}

type RefundShippingInput struct {
	Amount     *string `json:"amount"`
	FullRefund *bool   `json:"fullRefund"`
}

type CreateRefundInput struct {
	Shop            string
	OrderID         string
	OrderNumber     string
	RefundLineItems []RefundLineItemInput
	Shipping        *RefundShippingInput
	Note            *string
	NotifyCustomer  bool
}

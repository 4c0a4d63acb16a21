package domain

// Money is a decimal amount rendered as a string, paired with its currency.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// OrderTracking is the canonical tracking record. Every nullable field is a
// pointer without omitempty: absent upstream data serializes as an explicit
// null so callers can rely on key presence.
type OrderTracking struct {
	OrderID            string       `json:"orderId"`
	OrderNumber        *string      `json:"orderNumber"`
	ConfirmationNumber *string      `json:"confirmationNumber"`
	Email              *string      `json:"email"`
	CreatedAt          *string      `json:"createdAt"`
	FulfillmentStatus  *string      `json:"fulfillmentStatus"`
	Cancelled          bool         `json:"cancelled"`
	CancelledAt        *string      `json:"cancelledAt"`
	CancelReason       *string      `json:"cancelReason"`
	ClosedAt           *string      `json:"closedAt"`
	Pricing            OrderPricing `json:"pricing"`
	ShippingAddress    *Address     `json:"shippingAddress"`
	Shipments          []Shipment   `json:"shipments"`
}

type OrderPricing struct {
	Subtotal *Money `json:"subtotal"`
	Shipping *Money `json:"shipping"`
	Tax      *Money `json:"tax"`
	Discount *Money `json:"discount"`
	Total    *Money `json:"total"`
}

// Address passes the upstream shipping address through untouched.
type Address struct {
	FirstName    *string  `json:"firstName"`
	LastName     *string  `json:"lastName"`
	Address1     *string  `json:"address1"`
	Address2     *string  `json:"address2"`
	City         *string  `json:"city"`
	Province     *string  `json:"province"`
	ProvinceCode *string  `json:"provinceCode"`
	Country      *string  `json:"country"`
	CountryCode  *string  `json:"countryCode"`
	Zip          *string  `json:"zip"`
	Phone        *string  `json:"phone"`
	Company      *string  `json:"company"`
	Formatted    []string `json:"formatted"`
}

// Shipment is one fulfillment with its tracking, products and timeline.
type Shipment struct {
	Status              *string           `json:"status"`
	EstimatedDeliveryAt *string           `json:"estimatedDeliveryAt"`
	DeliveredAt         *string           `json:"deliveredAt"`
	Tracking            ShipmentTracking  `json:"tracking"`
	Products            []ShipmentProduct `json:"products"`
	Timeline            []TimelineEvent   `json:"timeline"`
}

// ShipmentTracking flattens all tracking-info entries into parallel arrays.
// Company comes from the first entry only.
type ShipmentTracking struct {
	Company *string  `json:"company"`
	Numbers []string `json:"numbers"`
	URLs    []string `json:"urls"`
}

type ShipmentProduct struct {
	FulfillmentLineItemID *string         `json:"fulfillmentLineItemId"`
	Title                 *string         `json:"title"`
	Quantity              int             `json:"quantity"`
	Pricing               *ProductPricing `json:"pricing"`
	Product               *ProductSummary `json:"product"`
	Variant               *VariantSummary `json:"variant"`
}

// ProductPricing is nil when the line item carries no price data at all.
type ProductPricing struct {
	UnitPrice  Money `json:"unitPrice"`
	TotalPrice Money `json:"totalPrice"`
}

type ProductSummary struct {
	ID    *string `json:"id"`
	Title *string `json:"title"`
}

type VariantSummary struct {
	ID    *string       `json:"id"`
	Title *string       `json:"title"`
	SKU   *string       `json:"sku"`
	Image *ProductImage `json:"image"`
}

type ProductImage struct {
	URL     *string `json:"url"`
	AltText *string `json:"altText"`
}

// TimelineEvent is one fulfillment status event, most recent first.
type TimelineEvent struct {
	Status     *string       `json:"status"`
	Message    *string       `json:"message"`
	HappenedAt *string       `json:"happenedAt"`
	Location   EventLocation `json:"location"`
}

type EventLocation struct {
	City     *string `json:"city"`
	Province *string `json:"province"`
	Country  *string `json:"country"`
}

// CancelResult reports the async cancel job handle. Done reflects the
// job's completion flag at submission time, not eventual completion.
type CancelResult struct {
	JobID string `json:"jobId"`
	Done  bool   `json:"done"`
}

// AddressUpdateResult is the post-update order identity plus address.
type AddressUpdateResult struct {
	OrderID         string   `json:"orderId"`
	OrderName       string   `json:"orderName"`
	ShippingAddress *Address `json:"shippingAddress"`
}

type ReturnResult struct {
	ReturnID  string `json:"returnId"`
	Status    string `json:"status"`
	OrderID   string `json:"orderId"`
	OrderName string `json:"orderName"`
}

type RefundResult struct {
	RefundID      string `json:"refundId"`
	CreatedAt     string `json:"createdAt"`
	TotalRefunded *Money `json:"totalRefunded"`
}

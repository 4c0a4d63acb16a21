package shopify

// Remote schema structs. Each query variant decodes into Order once at the
// boundary; every field is optional so a missing key never fails the decode.

type MoneyBag struct {
	ShopMoney *Money `json:"shopMoney"`
}

type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type Order struct {
	ID                       string          `json:"id"`
	Name                     *string         `json:"name"`
	Email                    *string         `json:"email"`
	CreatedAt                *string         `json:"createdAt"`
	ConfirmationNumber       *string         `json:"confirmationNumber"`
	DisplayFulfillmentStatus *string         `json:"displayFulfillmentStatus"`
	CancelledAt              *string         `json:"cancelledAt"`
	CancelReason             *string         `json:"cancelReason"`
	ClosedAt                 *string         `json:"closedAt"`
	SubtotalPriceSet         *MoneyBag       `json:"subtotalPriceSet"`
	TotalShippingPriceSet    *MoneyBag       `json:"totalShippingPriceSet"`
	TotalTaxSet              *MoneyBag       `json:"totalTaxSet"`
	TotalDiscountsSet        *MoneyBag       `json:"totalDiscountsSet"`
	TotalPriceSet            *MoneyBag       `json:"totalPriceSet"`
	ShippingAddress          *MailingAddress `json:"shippingAddress"`
	Fulfillments             []Fulfillment   `json:"fulfillments"`
}

type MailingAddress struct {
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

type Fulfillment struct {
	ID                   string                  `json:"id"`
	DisplayStatus        *string                 `json:"displayStatus"`
	EstimatedDeliveryAt  *string                 `json:"estimatedDeliveryAt"`
	DeliveredAt          *string                 `json:"deliveredAt"`
	TrackingInfo         []TrackingInfo          `json:"trackingInfo"`
	FulfillmentLineItems FulfillmentLineItemConn `json:"fulfillmentLineItems"`
	Events               FulfillmentEventConn    `json:"events"`
}

type TrackingInfo struct {
	Company *string `json:"company"`
	Number  *string `json:"number"`
	URL     *string `json:"url"`
}

type FulfillmentLineItemConn struct {
	Edges []struct {
		Node FulfillmentLineItem `json:"node"`
	} `json:"edges"`
}

type FulfillmentLineItem struct {
	ID       *string   `json:"id"`
	Quantity int       `json:"quantity"`
	LineItem *LineItem `json:"lineItem"`
}

type LineItem struct {
	ID                     *string     `json:"id"`
	Title                  *string     `json:"title"`
	OriginalUnitPriceSet   *MoneyBag   `json:"originalUnitPriceSet"`
	DiscountedUnitPriceSet *MoneyBag   `json:"discountedUnitPriceSet"`
	Product                *ProductRef `json:"product"`
	Variant                *VariantRef `json:"variant"`
}

type ProductRef struct {
	ID    *string `json:"id"`
	Title *string `json:"title"`
}

type VariantRef struct {
	ID    *string `json:"id"`
	Title *string `json:"title"`
	SKU   *string `json:"sku"`
	Image *Image  `json:"image"`
}

type Image struct {
	URL     *string `json:"url"`
	AltText *string `json:"altText"`
}

type FulfillmentEventConn struct {
	Edges []struct {
		Node FulfillmentEvent `json:"node"`
	} `json:"edges"`
}

type FulfillmentEvent struct {
	Status     *string `json:"status"`
	Message    *string `json:"message"`
	HappenedAt *string `json:"happenedAt"`
	City       *string `json:"city"`
	Province   *string `json:"province"`
	Country    *string `json:"country"`
}

// Product is the product-search result node, passed through to the caller.
type Product struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Handle         string `json:"handle"`
	Status         string `json:"status"`
	TotalInventory int    `json:"totalInventory"`
	PriceRangeV2   *struct {
		MinVariantPrice Money `json:"minVariantPrice"`
		MaxVariantPrice Money `json:"maxVariantPrice"`
	} `json:"priceRangeV2"`
	FeaturedImage *Image `json:"featuredImage"`
}

// UserError is a field-level validation error inside an otherwise
// successful mutation response.
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

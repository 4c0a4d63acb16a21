package shopify

// OrderCancelMutation submits an asynchronous cancel. The remote side
// returns a job handle, not the cancelled order.
const OrderCancelMutation = `
mutation cancelOrder($orderId: ID!, $reason: OrderCancelReason!, $refund: Boolean!, $restock: Boolean!, $notifyCustomer: Boolean, $staffNote: String) {
  orderCancel(orderId: $orderId, reason: $reason, refund: $refund, restock: $restock, notifyCustomer: $notifyCustomer, staffNote: $staffNote) {
    job {
      id
      done
    }
    orderCancelUserErrors {
      field
      message
    }
  }
}
`

// OrderUpdateMutation updates mutable order fields; we use it for the
// shipping address only.
const OrderUpdateMutation = `
mutation updateOrderShippingAddress($input: OrderInput!) {
  orderUpdate(input: $input) {
    order {
      id
      name
      shippingAddress {
        address1
        address2
        city
        province
        provinceCode
        country
        countryCode
        zip
        firstName
        lastName
        phone
        company
        formatted
      }
    }
    userErrors {
      field
      message
    }
  }
}
`

// ReturnCreateMutation opens a return for fulfilled line items
const ReturnCreateMutation = `
mutation createReturn($returnInput: ReturnInput!) {
  returnCreate(returnInput: $returnInput) {
    return {
      id
      status
      order {
        id
        name
      }
    }
    returnUserErrors {
      field
      message
    }
  }
}
`

// RefundCreateMutation creates a refund for an order
const RefundCreateMutation = `
mutation createRefund($input: RefundInput!) {
  refundCreate(input: $input) {
    refund {
      id
      createdAt
      totalRefundedSet {
        shopMoney {
          amount
          currencyCode
        }
      }
    }
    userErrors {
      field
      message
    }
  }
}
`

// MailingAddressInput carries the partial shipping address for orderUpdate.
// Only supplied fields are sent; Shopify keeps the rest unchanged.
type MailingAddressInput struct {
	FirstName    *string `json:"firstName,omitempty"`
	LastName     *string `json:"lastName,omitempty"`
	Address1     *string `json:"address1,omitempty"`
	Address2     *string `json:"address2,omitempty"`
	City         *string `json:"city,omitempty"`
	ProvinceCode *string `json:"provinceCode,omitempty"`
	CountryCode  *string `json:"countryCode,omitempty"`
	Zip          *string `json:"zip,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Company      *string `json:"company,omitempty"`
}

// OrderUpdateInput is the OrderInput subset we send for address changes.
type OrderUpdateInput struct {
	ID              string              `json:"id"`
	ShippingAddress MailingAddressInput `json:"shippingAddress"`
}

// ReturnInput is the returnCreate mutation input.
type ReturnInput struct {
	OrderID         string                `json:"orderId"`
	ReturnLineItems []ReturnLineItemInput `json:"returnLineItems"`
	NotifyCustomer  bool                  `json:"notifyCustomer"`
}

type ReturnLineItemInput struct {
	FulfillmentLineItemID string  `json:"fulfillmentLineItemId"`
	Quantity              int     `json:"quantity"`
	ReturnReason          string  `json:"returnReason"`
	CustomerNote          *string `json:"customerNote,omitempty"`
}

// RefundInput is the refundCreate mutation input. RefundLineItems and
// Shipping are omitted from the wire payload when unset.
type RefundInput struct {
	OrderID         string                `json:"orderId"`
	Note            *string               `json:"note,omitempty"`
	Notify          bool                  `json:"notify"`
	RefundLineItems []RefundLineItemInput `json:"refundLineItems,omitempty"`
	Shipping        *RefundShippingInput  `json:"shipping,omitempty"`
}

type RefundLineItemInput struct {
	LineItemID  string  `json:"lineItemId"`
	Quantity    int     `json:"quantity"`
	RestockType *string `json:"restockType,omitempty"`
	LocationID  *string `json:"locationId,omitempty"`
}

type RefundShippingInput struct {
	Amount     *string `json:"amount,omitempty"`
	FullRefund bool    `json:"fullRefund"`
}

// Mutation payload shapes. A nil payload pointer after decode means the
// remote schema returned nothing under the mutation key.

type OrderCancelPayload struct {
	Job *struct {
		ID   string `json:"id"`
		Done bool   `json:"done"`
	} `json:"job"`
	OrderCancelUserErrors []UserError `json:"orderCancelUserErrors"`
}

type OrderUpdatePayload struct {
	Order *struct {
		ID              string          `json:"id"`
		Name            string          `json:"name"`
		ShippingAddress *MailingAddress `json:"shippingAddress"`
	} `json:"order"`
	UserErrors []UserError `json:"userErrors"`
}

type ReturnCreatePayload struct {
	Return *struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Order  struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"order"`
	} `json:"return"`
	ReturnUserErrors []UserError `json:"returnUserErrors"`
}

type RefundCreatePayload struct {
	Refund *struct {
		ID               string    `json:"id"`
		CreatedAt        string    `json:"createdAt"`
		TotalRefundedSet *MoneyBag `json:"totalRefundedSet"`
	} `json:"refund"`
	UserErrors []UserError `json:"userErrors"`
}

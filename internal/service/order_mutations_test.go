package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abhinavshyju/ShopifyApp/internal/shopify"
	apperrors "github.com/abhinavshyju/ShopifyApp/pkg/errors"
)

func TestCancelSubmitsJob(t *testing.T) {
	exec := &fakeExecutor{responses: []string{
		`{"orderCancel": {"job": {"id": "gid://shopify/Job/1", "done": false}, "orderCancelUserErrors": []}}`,
	}}
	svc := newOrderService(exec)

	result, err := svc.Cancel(context.Background(), CancelOrderInput{
		Shop:           "shop1.myshopify.com",
		OrderID:        "gid://shopify/Order/1",
		Reason:         "CUSTOMER",
		Restock:        true,
		NotifyCustomer: true,
	})
	require.NoError(t, err)
	require.Equal(t, "gid://shopify/Job/1", result.JobID)
	require.False(t, result.Done)

	require.Len(t, exec.calls, 1)
	vars := exec.calls[0].Variables
	require.Equal(t, "gid://shopify/Order/1", vars["orderId"])
	require.Equal(t, "CUSTOMER", vars["reason"])
	require.Equal(t, false, vars["refund"])
	require.Equal(t, true, vars["restock"])
	require.NotContains(t, vars, "staffNote")
}

func TestCancelRejectsUnknownReason(t *testing.T) {
	exec := &fakeExecutor{}
	svc := newOrderService(exec)

	_, err := svc.Cancel(context.Background(), CancelOrderInput{
		Shop:    "shop1.myshopify.com",
		OrderID: "gid://shopify/Order/1",
		Reason:  "BECAUSE",
	})
	var v *apperrors.ErrValidation
	require.ErrorAs(t, err, &v)
	require.Empty(t, exec.calls)
}

func TestCancelResolvesOrderNumberFirst(t *testing.T) {
	exec := &fakeExecutor{responses: []string{
		`{"orders": {"edges": [{"node": {"id": "gid://shopify/Order/42"}}]}}`,
		`{"orderCancel": {"job": {"id": "gid://shopify/Job/2", "done": true}, "orderCancelUserErrors": []}}`,
	}}
	svc := newOrderService(exec)

	result, err := svc.Cancel(context.Background(), CancelOrderInput{
		Shop:        "shop1.myshopify.com",
		OrderNumber: "1042",
		Reason:      "INVENTORY",
	})
	require.NoError(t, err)
	require.True(t, result.Done)
	require.Len(t, exec.calls, 2)
	require.Equal(t, "name:#1042", exec.calls[0].Variables["query"])
	require.Equal(t, "gid://shopify/Order/42", exec.calls[1].Variables["orderId"])
}

func TestCancelAggregatesUserErrors(t *testing.T) {
	exec := &fakeExecutor{responses: []string{
		`{"orderCancel": {"job": null, "orderCancelUserErrors": [
			{"field": ["orderId"], "message": "Order is already cancelled"}
		]}}`,
	}}
	svc := newOrderService(exec)

	_, err := svc.Cancel(context.Background(), CancelOrderInput{
		Shop:    "shop1.myshopify.com",
		OrderID: "gid://shopify/Order/1",
		Reason:  "CUSTOMER",
	})
	var up *apperrors.ErrUpstream
	require.ErrorAs(t, err, &up)
	require.Contains(t, err.Error(), "orderId: Order is already cancelled")
}

func TestCancelMissingPayloadIsUnexpected(t *testing.T) {
	exec := &fakeExecutor{responses: []string{`{}`}}
	svc := newOrderService(exec)

	_, err := svc.Cancel(context.Background(), CancelOrderInput{
		Shop:    "shop1.myshopify.com",
		OrderID: "gid://shopify/Order/1",
		Reason:  "CUSTOMER",
	})
	var unexpected *apperrors.ErrUnexpectedResponse
	require.ErrorAs(t, err, &unexpected)
}

func TestUpdateShippingAddressSendsPartialInput(t *testing.T) {
	exec := &fakeExecutor{responses: []string{
		`{"orderUpdate": {"order": {
			"id": "gid://shopify/Order/1",
			"name": "#1042",
			"shippingAddress": {"address1": "1 New St", "city": "Portland"}
		}, "userErrors": []}}`,
	}}
	svc := newOrderService(exec)

	addr1 := "1 New St"
	city := "Portland"
	result, err := svc.UpdateShippingAddress(context.Background(), UpdateShippingAddressInput{
		Shop:    "shop1.myshopify.com",
		OrderID: "gid://shopify/Order/1",
		ShippingAddress: ShippingAddressInput{
			Address1: &addr1,
			City:     &city,
		},
	})
	require.NoError(t, err)
	require.Equal(t, "#1042", result.OrderName)
	require.NotNil(t, result.ShippingAddress)
	require.Equal(t, "1 New St", *result.ShippingAddress.Address1)

	input, ok := exec.calls[0].Variables["input"].(shopify.OrderUpdateInput)
	require.True(t, ok)
	// Unset fields are omitted from the wire payload entirely.
	raw, err := json.Marshal(input.ShippingAddress)
	require.NoError(t, err)
	require.JSONEq(t, `{"address1": "1 New St", "city": "Portland"}`, string(raw))
}

func TestCreateReturnDerivesLineItemsFromFulfillments(t *testing.T) {
	note := "wrong size"
	exec := &fakeExecutor{responses: []string{
		// Tracking fetch: one product with quantity 0, one with quantity 2.
		`{"order": {
			"id": "gid://shopify/Order/1",
			"fulfillments": [
				{"fulfillmentLineItems": {"edges": [{"node": {"id": "gid://shopify/FulfillmentLineItem/1", "quantity": 0}}]}},
				{"fulfillmentLineItems": {"edges": [{"node": {"id": "gid://shopify/FulfillmentLineItem/2", "quantity": 2}}]}}
			]
		}}`,
		`{"returnCreate": {"return": {
			"id": "gid://shopify/Return/1",
			"status": "OPEN",
			"order": {"id": "gid://shopify/Order/1", "name": "#1042"}
		}, "returnUserErrors": []}}`,
	}}
	svc := newOrderService(exec)

	result, err := svc.CreateReturn(context.Background(), CreateReturnInput{
		Shop:             "shop1.myshopify.com",
		OrderID:          "gid://shopify/Order/1",
		ReturnReasonNote: &note,
	})
	require.NoError(t, err)
	require.Equal(t, "gid://shopify/Return/1", result.ReturnID)
	require.Equal(t, "OPEN", result.Status)
	require.Equal(t, "#1042", result.OrderName)

	input, ok := exec.calls[1].Variables["returnInput"].(shopify.ReturnInput)
	require.True(t, ok)
	require.Len(t, input.ReturnLineItems, 1)
	item := input.ReturnLineItems[0]
	require.Equal(t, "gid://shopify/FulfillmentLineItem/2", item.FulfillmentLineItemID)
	require.Equal(t, 2, item.Quantity)
	require.Equal(t, "OTHER", item.ReturnReason)
	require.NotNil(t, item.CustomerNote)
	require.Equal(t, "wrong size", *item.CustomerNote)
}

func TestCreateReturnNoReturnableItems(t *testing.T) {
	exec := &fakeExecutor{responses: []string{
		`{"order": {"id": "gid://shopify/Order/1", "fulfillments": []}}`,
	}}
	svc := newOrderService(exec)

	_, err := svc.CreateReturn(context.Background(), CreateReturnInput{
		Shop:    "shop1.myshopify.com",
		OrderID: "gid://shopify/Order/1",
	})
	var v *apperrors.ErrValidation
	require.ErrorAs(t, err, &v)
	require.Contains(t, err.Error(), "no returnable items")
}

func TestCreateRefundShippingOnlyPayload(t *testing.T) {
	exec := &fakeExecutor{responses: []string{
		`{"refundCreate": {"refund": {
			"id": "gid://shopify/Refund/1",
			"createdAt": "2025-02-06T00:00:00Z",
			"totalRefundedSet": {"shopMoney": {"amount": "4.99", "currencyCode": "USD"}}
		}, "userErrors": []}}`,
	}}
	svc := newOrderService(exec)

	full := true
	result, err := svc.CreateRefund(context.Background(), CreateRefundInput{
		Shop:     "shop1.myshopify.com",
		OrderID:  "gid://shopify/Order/1",
		Shipping: &RefundShippingInput{FullRefund: &full},
	})
	require.NoError(t, err)
	require.Equal(t, "gid://shopify/Refund/1", result.RefundID)
	require.NotNil(t, result.TotalRefunded)
	require.Equal(t, "4.99", result.TotalRefunded.Amount)

	input, ok := exec.calls[0].Variables["input"].(shopify.RefundInput)
	require.True(t, ok)
	raw, err := json.Marshal(input)
	require.NoError(t, err)
	// shipping is present, refundLineItems is not sent at all.
	require.JSONEq(t, `{
		"orderId": "gid://shopify/Order/1",
		"notify": false,
		"shipping": {"fullRefund": true}
	}`, string(raw))
}

func TestCreateRefundUserErrors(t *testing.T) {
	exec := &fakeExecutor{responses: []string{
		`{"refundCreate": {"refund": null, "userErrors": [
			{"field": ["refundLineItems", "0", "quantity"], "message": "cannot exceed purchased quantity"}
		]}}`,
	}}
	svc := newOrderService(exec)

	_, err := svc.CreateRefund(context.Background(), CreateRefundInput{
		Shop:    "shop1.myshopify.com",
		OrderID: "gid://shopify/Order/1",
		RefundLineItems: []RefundLineItemInput{
			{LineItemID: "gid://shopify/LineItem/1", Quantity: 99},
		},
	})
	var up *apperrors.ErrUpstream
	require.ErrorAs(t, err, &up)
	require.Contains(t, err.Error(), "refundLineItems.0.quantity: cannot exceed purchased quantity")
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhinavshyju/ShopifyApp/internal/domain"
	"github.com/abhinavshyju/ShopifyApp/internal/shopify"
	apperrors "github.com/abhinavshyju/ShopifyApp/pkg/errors"
)

// Cancel submits an asynchronous order cancellation and returns the job
// handle. Done is the job's completion flag at submission time only.
func (s *OrderService) Cancel(ctx context.Context, in CancelOrderInput) (*domain.CancelResult, error) {
	if !validCancelReason(in.Reason) {
		return nil, &apperrors.ErrValidation{
			Message: fmt.Sprintf("invalid reason. Must be one of: %s", strings.Join(CancelReasons, ", ")),
		}
	}

	token, err := s.tokens.EnsureValidToken(ctx, in.Shop)
	if err != nil {
		return nil, err
	}

	orderID, err := s.resolveOrderID(ctx, in.Shop, token.AccessToken, in.OrderID, in.OrderNumber)
	if err != nil {
		return nil, err
	}

	variables := map[string]interface{}{
		"orderId":        orderID,
		"reason":         in.Reason,
		"refund":         false,
		"restock":        in.Restock,
		"notifyCustomer": in.NotifyCustomer,
	}
	if in.StaffNote != nil {
		variables["staffNote"] = *in.StaffNote
	}

	resp, err := s.client.Execute(ctx, in.Shop, token.AccessToken, shopify.OrderCancelMutation, variables)
	if err != nil {
		return nil, fmt.Errorf("order cancel: %w", err)
	}

	var result struct {
		OrderCancel *shopify.OrderCancelPayload `json:"orderCancel"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("parse order cancel response: %w", err)
	}
	if result.OrderCancel == nil {
		return nil, &apperrors.ErrUnexpectedResponse{Operation: "orderCancel"}
	}
	if len(result.OrderCancel.OrderCancelUserErrors) > 0 {
		return nil, &apperrors.ErrUpstream{
			Operation: "order cancel",
			Errors:    userErrorStrings(result.OrderCancel.OrderCancelUserErrors),
		}
	}
	if result.OrderCancel.Job == nil {
		return nil, &apperrors.ErrUnexpectedResponse{Operation: "orderCancel"}
	}

	s.logger.Info("Order cancellation submitted",
		zap.String("shop", in.Shop),
		zap.String("order_id", orderID),
		zap.String("job_id", result.OrderCancel.Job.ID),
	)

	return &domain.CancelResult{
		JobID: result.OrderCancel.Job.ID,
		Done:  result.OrderCancel.Job.Done,
	}, nil
}

// UpdateShippingAddress changes the order's shipping address. This path
// requires an orderId: it operates post-resolution by contract.
func (s *OrderService) UpdateShippingAddress(ctx context.Context, in UpdateShippingAddressInput) (*domain.AddressUpdateResult, error) {
	token, err := s.tokens.EnsureValidToken(ctx, in.Shop)
	if err != nil {
		return nil, err
	}

	input := shopify.OrderUpdateInput{
		ID: in.OrderID,
		ShippingAddress: shopify.MailingAddressInput{
			FirstName:    in.ShippingAddress.FirstName,
			LastName:     in.ShippingAddress.LastName,
			Address1:     in.ShippingAddress.Address1,
			Address2:     in.ShippingAddress.Address2,
			City:         in.ShippingAddress.City,
			ProvinceCode: in.ShippingAddress.ProvinceCode,
			CountryCode:  in.ShippingAddress.CountryCode,
			Zip:          in.ShippingAddress.Zip,
			Phone:        in.ShippingAddress.Phone,
			Company:      in.ShippingAddress.Company,
		},
	}

	resp, err := s.client.Execute(ctx, in.Shop, token.AccessToken, shopify.OrderUpdateMutation, map[string]interface{}{
		"input": input,
	})
	if err != nil {
		return nil, fmt.Errorf("order update: %w", err)
	}

	var result struct {
		OrderUpdate *shopify.OrderUpdatePayload `json:"orderUpdate"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("parse order update response: %w", err)
	}
	if result.OrderUpdate == nil {
		return nil, &apperrors.ErrUnexpectedResponse{Operation: "orderUpdate"}
	}
	if len(result.OrderUpdate.UserErrors) > 0 {
		return nil, &apperrors.ErrUpstream{
			Operation: "shipping address update",
			Errors:    userErrorStrings(result.OrderUpdate.UserErrors),
		}
	}
	if result.OrderUpdate.Order == nil {
		return nil, &apperrors.ErrUnexpectedResponse{Operation: "orderUpdate"}
	}

	return &domain.AddressUpdateResult{
		OrderID:         result.OrderUpdate.Order.ID,
		OrderName:       result.OrderUpdate.Order.Name,
		ShippingAddress: mapAddress(result.OrderUpdate.Order.ShippingAddress),
	}, nil
}

// CreateReturn opens a return. When the caller supplies no line items the
// full returnable set is derived from the order's fulfillments.
func (s *OrderService) CreateReturn(ctx context.Context, in CreateReturnInput) (*domain.ReturnResult, error) {
	token, err := s.tokens.EnsureValidToken(ctx, in.Shop)
	if err != nil {
		return nil, err
	}

	orderID, err := s.resolveOrderID(ctx, in.Shop, token.AccessToken, in.OrderID, in.OrderNumber)
	if err != nil {
		return nil, err
	}

	items := in.ReturnLineItems
	if len(items) == 0 {
		items, err = s.deriveReturnLineItems(ctx, in.Shop, token.AccessToken, orderID, in.ReturnReasonNote)
		if err != nil {
			return nil, err
		}
	}

	returnInput := shopify.ReturnInput{
		OrderID:         orderID,
		ReturnLineItems: make([]shopify.ReturnLineItemInput, 0, len(items)),
		NotifyCustomer:  in.NotifyCustomer,
	}
	for _, item := range items {
		reason := "OTHER"
		if item.ReturnReason != nil && *item.ReturnReason != "" {
			reason = *item.ReturnReason
		}
		returnInput.ReturnLineItems = append(returnInput.ReturnLineItems, shopify.ReturnLineItemInput{
			FulfillmentLineItemID: item.FulfillmentLineItemID,
			Quantity:              item.Quantity,
			ReturnReason:          reason,
			CustomerNote:          item.CustomerNote,
		})
	}

	resp, err := s.client.Execute(ctx, in.Shop, token.AccessToken, shopify.ReturnCreateMutation, map[string]interface{}{
		"returnInput": returnInput,
	})
	if err != nil {
		return nil, fmt.Errorf("return create: %w", err)
	}

	var result struct {
		ReturnCreate *shopify.ReturnCreatePayload `json:"returnCreate"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("parse return create response: %w", err)
	}
	if result.ReturnCreate == nil {
		return nil, &apperrors.ErrUnexpectedResponse{Operation: "returnCreate"}
	}
	if len(result.ReturnCreate.ReturnUserErrors) > 0 {
		return nil, &apperrors.ErrUpstream{
			Operation: "return creation",
			Errors:    userErrorStrings(result.ReturnCreate.ReturnUserErrors),
		}
	}
	if result.ReturnCreate.Return == nil {
		return nil, &apperrors.ErrUnexpectedResponse{Operation: "returnCreate"}
	}

	ret := result.ReturnCreate.Return
	return &domain.ReturnResult{
		ReturnID:  ret.ID,
		Status:    ret.Status,
		OrderID:   ret.Order.ID,
		OrderName: ret.Order.Name,
	}, nil
}

// deriveReturnLineItems walks every shipment's products and returns each
// one with a positive quantity and a known fulfillment-line-item id.
func (s *OrderService) deriveReturnLineItems(ctx context.Context, shop, accessToken, orderID string, note *string) ([]ReturnLineItemInput, error) {
	order, err := s.fetchOrderByID(ctx, shop, accessToken, orderID)
	if err != nil {
		return nil, err
	}
	tracking := buildTracking(order)

	var items []ReturnLineItemInput
	for _, shipment := range tracking.Shipments {
		for _, product := range shipment.Products {
			if product.Quantity <= 0 || product.FulfillmentLineItemID == nil {
				continue
			}
			items = append(items, ReturnLineItemInput{
				FulfillmentLineItemID: *product.FulfillmentLineItemID,
				Quantity:              product.Quantity,
				CustomerNote:          note,
			})
		}
	}

	if len(items) == 0 {
		return nil, &apperrors.ErrValidation{Message: "no returnable items found for this order"}
	}
	return items, nil
}

// CreateRefund creates a refund. RefundLineItems and Shipping are only
// sent when supplied; shipping.fullRefund defaults to false once a
// shipping object is present at all.
func (s *OrderService) CreateRefund(ctx context.Context, in CreateRefundInput) (*domain.RefundResult, error) {
	token, err := s.tokens.EnsureValidToken(ctx, in.Shop)
	if err != nil {
		return nil, err
	}

	orderID, err := s.resolveOrderID(ctx, in.Shop, token.AccessToken, in.OrderID, in.OrderNumber)
	if err != nil {
		return nil, err
	}

	input := shopify.RefundInput{
		OrderID: orderID,
		Note:    in.Note,
		Notify:  in.NotifyCustomer,
	}
	for _, item := range in.RefundLineItems {
		input.RefundLineItems = append(input.RefundLineItems, shopify.RefundLineItemInput{
			LineItemID:  item.LineItemID,
			Quantity:    item.Quantity,
			RestockType: item.RestockType,
			LocationID:  item.LocationID,
		})
	}
	if in.Shipping != nil {
		shipping := &shopify.RefundShippingInput{Amount: in.Shipping.Amount}
		if in.Shipping.FullRefund != nil {
			shipping.FullRefund = *in.Shipping.FullRefund
		}
		input.Shipping = shipping
	}

	resp, err := s.client.Execute(ctx, in.Shop, token.AccessToken, shopify.RefundCreateMutation, map[string]interface{}{
		"input": input,
	})
	if err != nil {
		return nil, fmt.Errorf("refund create: %w", err)
	}

	var result struct {
		RefundCreate *shopify.RefundCreatePayload `json:"refundCreate"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("parse refund create response: %w", err)
	}
	if result.RefundCreate == nil {
		return nil, &apperrors.ErrUnexpectedResponse{Operation: "refundCreate"}
	}
	if len(result.RefundCreate.UserErrors) > 0 {
		return nil, &apperrors.ErrUpstream{
			Operation: "refund creation",
			Errors:    userErrorStrings(result.RefundCreate.UserErrors),
		}
	}
	if result.RefundCreate.Refund == nil {
		return nil, &apperrors.ErrUnexpectedResponse{Operation: "refundCreate"}
	}

	refund := result.RefundCreate.Refund
	return &domain.RefundResult{
		RefundID:      refund.ID,
		CreatedAt:     refund.CreatedAt,
		TotalRefunded: shopMoney(refund.TotalRefundedSet),
	}, nil
}

func validCancelReason(reason string) bool {
	for _, r := range CancelReasons {
		if reason == r {
			return true
		}
	}
	return false
}

// userErrorStrings renders remote user errors as "field: message" pairs.
func userErrorStrings(errs []shopify.UserError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		if len(e.Field) > 0 {
			out[i] = fmt.Sprintf("%s: %s", strings.Join(e.Field, "."), e.Message)
		} else {
			out[i] = e.Message
		}
	}
	return out
}

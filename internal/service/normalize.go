package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhinavshyju/ShopifyApp/internal/domain"
	"github.com/abhinavshyju/ShopifyApp/internal/shopify"
)

// buildTracking maps a decoded order, from any of the three lookup
// variants, into the canonical tracking record. It is total: optional
// upstream fields that are absent come out as nil, never as a missing key.
func buildTracking(o *shopify.Order) *domain.OrderTracking {
	out := &domain.OrderTracking{
		OrderID:            o.ID,
		ConfirmationNumber: o.ConfirmationNumber,
		Email:              o.Email,
		CreatedAt:          o.CreatedAt,
		FulfillmentStatus:  o.DisplayFulfillmentStatus,
		Cancelled:          o.CancelledAt != nil,
		CancelledAt:        o.CancelledAt,
		CancelReason:       o.CancelReason,
		ClosedAt:           o.ClosedAt,
		Pricing: domain.OrderPricing{
			Subtotal: shopMoney(o.SubtotalPriceSet),
			Shipping: shopMoney(o.TotalShippingPriceSet),
			Tax:      shopMoney(o.TotalTaxSet),
			Discount: shopMoney(o.TotalDiscountsSet),
			Total:    shopMoney(o.TotalPriceSet),
		},
		ShippingAddress: mapAddress(o.ShippingAddress),
		Shipments:       make([]domain.Shipment, 0, len(o.Fulfillments)),
	}

	if o.Name != nil {
		number := strings.TrimPrefix(*o.Name, "#")
		out.OrderNumber = &number
	}

	for _, f := range o.Fulfillments {
		out.Shipments = append(out.Shipments, buildShipment(f))
	}

	return out
}

func buildShipment(f shopify.Fulfillment) domain.Shipment {
	shipment := domain.Shipment{
		Status:              f.DisplayStatus,
		EstimatedDeliveryAt: f.EstimatedDeliveryAt,
		DeliveredAt:         f.DeliveredAt,
		Tracking: domain.ShipmentTracking{
			Numbers: make([]string, 0, len(f.TrackingInfo)),
			URLs:    make([]string, 0, len(f.TrackingInfo)),
		},
		Products: make([]domain.ShipmentProduct, 0, len(f.FulfillmentLineItems.Edges)),
		Timeline: make([]domain.TimelineEvent, 0, len(f.Events.Edges)),
	}

	// The first carrier names the shipment; numbers and urls are
	// flattened across every tracking entry as parallel arrays.
	if len(f.TrackingInfo) > 0 {
		shipment.Tracking.Company = f.TrackingInfo[0].Company
	}
	for _, t := range f.TrackingInfo {
		shipment.Tracking.Numbers = append(shipment.Tracking.Numbers, strOrEmpty(t.Number))
		shipment.Tracking.URLs = append(shipment.Tracking.URLs, strOrEmpty(t.URL))
	}

	for _, edge := range f.FulfillmentLineItems.Edges {
		shipment.Products = append(shipment.Products, buildProduct(edge.Node))
	}

	// Events arrive most-recent-first from the query; order is preserved.
	for _, edge := range f.Events.Edges {
		e := edge.Node
		shipment.Timeline = append(shipment.Timeline, domain.TimelineEvent{
			Status:     e.Status,
			Message:    e.Message,
			HappenedAt: e.HappenedAt,
			Location: domain.EventLocation{
				City:     e.City,
				Province: e.Province,
				Country:  e.Country,
			},
		})
	}

	return shipment
}

func buildProduct(node shopify.FulfillmentLineItem) domain.ShipmentProduct {
	product := domain.ShipmentProduct{
		FulfillmentLineItemID: node.ID,
		Quantity:              node.Quantity,
	}

	li := node.LineItem
	if li == nil {
		return product
	}

	product.Title = li.Title
	if li.Product != nil {
		product.Product = &domain.ProductSummary{ID: li.Product.ID, Title: li.Product.Title}
	}
	if li.Variant != nil {
		v := &domain.VariantSummary{ID: li.Variant.ID, Title: li.Variant.Title, SKU: li.Variant.SKU}
		if li.Variant.Image != nil {
			v.Image = &domain.ProductImage{URL: li.Variant.Image.URL, AltText: li.Variant.Image.AltText}
		}
		product.Variant = v
	}

	// Discounted price wins over the original one; no price data on
	// either field means pricing stays null, not zero.
	unit := shopMoney(li.DiscountedUnitPriceSet)
	if unit == nil {
		unit = shopMoney(li.OriginalUnitPriceSet)
	}
	if unit != nil {
		product.Pricing = &domain.ProductPricing{
			UnitPrice: *unit,
			TotalPrice: domain.Money{
				Amount:       totalAmount(unit.Amount, node.Quantity),
				CurrencyCode: unit.CurrencyCode,
			},
		}
	}

	return product
}

// totalAmount renders unit × quantity with exactly two decimal places.
func totalAmount(unitAmount string, quantity int) string {
	f, err := strconv.ParseFloat(unitAmount, 64)
	if err != nil {
		f = 0
	}
	return fmt.Sprintf("%.2f", f*float64(quantity))
}

func shopMoney(bag *shopify.MoneyBag) *domain.Money {
	if bag == nil || bag.ShopMoney == nil {
		return nil
	}
	return &domain.Money{
		Amount:       bag.ShopMoney.Amount,
		CurrencyCode: bag.ShopMoney.CurrencyCode,
	}
}

func mapAddress(a *shopify.MailingAddress) *domain.Address {
	if a == nil {
		return nil
	}
	return &domain.Address{
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Address1:     a.Address1,
		Address2:     a.Address2,
		City:         a.City,
		Province:     a.Province,
		ProvinceCode: a.ProvinceCode,
		Country:      a.Country,
		CountryCode:  a.CountryCode,
		Zip:          a.Zip,
		Phone:        a.Phone,
		Company:      a.Company,
		Formatted:    a.Formatted,
	}
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

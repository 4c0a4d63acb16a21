package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhinavshyju/ShopifyApp/internal/service"
	apperrors "github.com/abhinavshyju/ShopifyApp/pkg/errors"
)

// TrackOrderRequest identifies an order by exactly one of three fields.
type TrackOrderRequest struct {
	Shop        string `json:"shop"`
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	Email       string `json:"email"`
}

// HandleTrackOrder handles POST /api/track-order
func HandleTrackOrder(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TrackOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondErrorMessage(c, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Shop == "" {
			respondErrorMessage(c, "Shop is required", http.StatusBadRequest)
			return
		}

		tracking, err := orders.Track(c.Request.Context(), service.TrackOrderInput{
			Shop:        req.Shop,
			OrderID:     req.OrderID,
			OrderNumber: req.OrderNumber,
			Email:       req.Email,
		})
		if err != nil {
			// The email path is list-like: no matches is an empty result
			// set, not an error envelope.
			if nf, ok := err.(*apperrors.ErrNotFound); ok && nf.Resource == "order" &&
				req.OrderID == "" && req.OrderNumber == "" && req.Email != "" {
				respondSuccess(c, gin.H{"orders": []interface{}{}, "count": 0}, "")
				return
			}
			logger.Warn("track order failed",
				zap.String("shop", req.Shop),
				zap.Error(err))
			respondError(c, err)
			return
		}

		respondSuccess(c, tracking, "Order retrieved successfully")
	}
}

type CancelOrderRequest struct {
	Shop           string  `json:"shop"`
	OrderID        string  `json:"orderId"`
	OrderNumber    string  `json:"orderNumber"`
	Reason         string  `json:"reason"`
	Restock        bool    `json:"restock"`
	NotifyCustomer *bool   `json:"notifyCustomer"`
	StaffNote      *string `json:"staffNote"`
}

// HandleCancelOrder handles POST /api/cancel-order
func HandleCancelOrder(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CancelOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondErrorMessage(c, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Shop == "" {
			respondErrorMessage(c, "Shop is required", http.StatusBadRequest)
			return
		}
		if req.OrderID == "" && req.OrderNumber == "" {
			respondErrorMessage(c, "Either orderId or orderNumber is required", http.StatusBadRequest)
			return
		}

		reason := req.Reason
		if reason == "" {
			reason = "CUSTOMER"
		}
		notify := true
		if req.NotifyCustomer != nil {
			notify = *req.NotifyCustomer
		}

		result, err := orders.Cancel(c.Request.Context(), service.CancelOrderInput{
			Shop:           req.Shop,
			OrderID:        req.OrderID,
			OrderNumber:    req.OrderNumber,
			Reason:         reason,
			Restock:        req.Restock,
			NotifyCustomer: notify,
			StaffNote:      req.StaffNote,
		})
		if err != nil {
			logger.Warn("order cancel failed",
				zap.String("shop", req.Shop),
				zap.Error(err))
			respondError(c, err)
			return
		}

		respondSuccess(c, result, "Order cancellation initiated successfully")
	}
}

type ChangeShipmentAddressRequest struct {
	Shop            string                        `json:"shop"`
	OrderID         string                        `json:"orderId"`
	OrderNumber     string                        `json:"orderNumber"`
	ShippingAddress *service.ShippingAddressInput `json:"shippingAddress"`
}

// HandleChangeShipmentAddress handles POST /api/change-shipment-address
func HandleChangeShipmentAddress(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChangeShipmentAddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondErrorMessage(c, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Shop == "" {
			respondErrorMessage(c, "Shop is required", http.StatusBadRequest)
			return
		}
		if req.OrderID == "" && req.OrderNumber == "" {
			respondErrorMessage(c, "Either orderId or orderNumber is required", http.StatusBadRequest)
			return
		}
		if req.ShippingAddress == nil {
			respondErrorMessage(c, "Shipping address is required", http.StatusBadRequest)
			return
		}

		orderID := req.OrderID
		if orderID == "" {
			resolved, err := orders.ResolveOrderID(c.Request.Context(), req.Shop, req.OrderID, req.OrderNumber)
			if err != nil {
				respondError(c, err)
				return
			}
			orderID = resolved
		}

		result, err := orders.UpdateShippingAddress(c.Request.Context(), service.UpdateShippingAddressInput{
			Shop:            req.Shop,
			OrderID:         orderID,
			ShippingAddress: *req.ShippingAddress,
		})
		if err != nil {
			logger.Warn("shipping address update failed",
				zap.String("shop", req.Shop),
				zap.String("order_id", orderID),
				zap.Error(err))
			respondError(c, err)
			return
		}

		respondSuccess(c, result, "Shipping address updated successfully")
	}
}

type ReturnOrderRequest struct {
	Shop             string                        `json:"shop"`
	OrderID          string                        `json:"orderId"`
	OrderNumber      string                        `json:"orderNumber"`
	ReturnLineItems  []service.ReturnLineItemInput `json:"returnLineItems"`
	ReturnReasonNote *string                       `json:"returnReasonNote"`
	NotifyCustomer   bool                          `json:"notifyCustomer"`
}

// HandleReturnOrder handles POST /api/return-order
func HandleReturnOrder(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ReturnOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondErrorMessage(c, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Shop == "" {
			respondErrorMessage(c, "Shop is required", http.StatusBadRequest)
			return
		}
		if req.OrderID == "" && req.OrderNumber == "" {
			respondErrorMessage(c, "Either orderId or orderNumber is required", http.StatusBadRequest)
			return
		}

		result, err := orders.CreateReturn(c.Request.Context(), service.CreateReturnInput{
			Shop:             req.Shop,
			OrderID:          req.OrderID,
			OrderNumber:      req.OrderNumber,
			ReturnLineItems:  req.ReturnLineItems,
			ReturnReasonNote: req.ReturnReasonNote,
			NotifyCustomer:   req.NotifyCustomer,
		})
		if err != nil {
			logger.Warn("return creation failed",
				zap.String("shop", req.Shop),
				zap.Error(err))
			respondError(c, err)
			return
		}

		respondSuccess(c, result, "Return created successfully")
	}
}

type RefundOrderRequest struct {
	Shop            string                        `json:"shop"`
	OrderID         string                        `json:"orderId"`
	OrderNumber     string                        `json:"orderNumber"`
	RefundLineItems []service.RefundLineItemInput `json:"refundLineItems"`
	Shipping        *service.RefundShippingInput  `json:"shipping"`
	FullRefund      *bool                         `json:"fullRefund"`
	Note            *string                       `json:"note"`
	NotifyCustomer  bool                          `json:"notifyCustomer"`
}

// HandleRefundOrder handles POST /api/refund-order
func HandleRefundOrder(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RefundOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondErrorMessage(c, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Shop == "" {
			respondErrorMessage(c, "Shop is required", http.StatusBadRequest)
			return
		}
		if req.OrderID == "" && req.OrderNumber == "" {
			respondErrorMessage(c, "Either orderId or orderNumber is required", http.StatusBadRequest)
			return
		}

		// fullRefund is a top-level shorthand for shipping:{fullRefund:true}
		// and defaults to true when neither form is supplied.
		shipping := req.Shipping
		if shipping == nil {
			full := true
			if req.FullRefund != nil {
				full = *req.FullRefund
			}
			if full {
				shipping = &service.RefundShippingInput{FullRefund: &full}
			}
		}

		result, err := orders.CreateRefund(c.Request.Context(), service.CreateRefundInput{
			Shop:            req.Shop,
			OrderID:         req.OrderID,
			OrderNumber:     req.OrderNumber,
			RefundLineItems: req.RefundLineItems,
			Shipping:        shipping,
			Note:            req.Note,
			NotifyCustomer:  req.NotifyCustomer,
		})
		if err != nil {
			logger.Warn("refund creation failed",
				zap.String("shop", req.Shop),
				zap.Error(err))
			respondError(c, err)
			return
		}

		respondSuccess(c, result, "Refund created successfully")
	}
}

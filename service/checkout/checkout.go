// Package checkout places cash-on-delivery orders for the contents of a guest
// cart.
package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"storefront.GO/core/notify"
	"storefront.GO/service/cart"
)

const (
	MsgOrderPlaced = "Order placed successfully!"
	MsgOrderFailed = "Failed to place order. Please try again."
)

var ErrEmptyCart = errors.New("checkout: cart is empty")

// Receipt describes a placed order.
type Receipt struct {
	OrderNumber string `json:"orderNumber"`
	Totals
	Items int `json:"items"`
}

type Service struct {
	submitter Submitter
	validate  *validator.Validate
	threshold int
	fee       int
	logger    *zap.Logger
}

func NewService(submitter Submitter, threshold, fee int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		submitter: submitter,
		validate:  NewValidator(),
		threshold: threshold,
		fee:       fee,
		logger:    logger,
	}
}

// Quote prices the current cart without placing an order.
func (s *Service) Quote(c *cart.Store) Totals {
	return ComputeTotals(c.GetCartTotal(), s.threshold, s.fee)
}

// PlaceOrder validates details and submits the cart. The submitted lines leave
// the cart only when the backend accepts the order; every outcome is also reported to n.
func (s *Service) PlaceOrder(ctx context.Context, c *cart.Store, n notify.Notifier, details CustomerDetails) (*Receipt, error) {
	if err := Validate(s.validate, details); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			for _, msg := range verr.Messages() {
				notify.Error(n, msg)
			}
		}
		return nil, err
	}

	st := c.State()
	if len(st.Items) == 0 {
		return nil, ErrEmptyCart
	}
	order := BuildOrder(details, st.Items)

	result, err := s.submitter.SubmitOrder(ctx, order)
	if err == nil && !result.Success {
		msg := result.Message
		if msg == "" {
			msg = "Failed to place order"
		}
		err = errors.New(msg)
	}
	if err != nil {
		s.logger.Error("place guest order", zap.Error(err), zap.Int("items", st.TotalItems))
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			notify.Error(n, apiErr.Message)
		} else {
			notify.Error(n, MsgOrderFailed)
		}
		return nil, fmt.Errorf("place order: %w", err)
	}

	c.RemoveOrdered(ctx, st.Items)
	notify.Success(n, MsgOrderPlaced)
	s.logger.Info("guest order placed", zap.String("order", result.Data.OrderNumber), zap.Int("total", st.TotalAmount))
	return &Receipt{
		OrderNumber: result.Data.OrderNumber,
		Totals:      ComputeTotals(st.TotalAmount, s.threshold, s.fee),
		Items:       st.TotalItems,
	}, nil
}

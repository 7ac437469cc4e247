package checkout

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Ahsankhan2345/shopping-hify/internal/cart"
	"github.com/Ahsankhan2345/shopping-hify/internal/domain"
)

// EventPublisher receives the order lifecycle events the storefront emits.
type EventPublisher interface {
	OrderPlaced(ctx context.Context, userID string, order domain.Order) error
	ReceiptExported(ctx context.Context, userID, invoiceNo string) error
}

// Service drives one checkout flow per user over the shared cart store.
//
// The cart is cleared exactly once, at successful placement. Receipt export
// is a pure read plus an event and never touches the cart.
type Service struct {
	carts     *cart.Store
	publisher EventPublisher
	logger    *zap.Logger

	mu    sync.Mutex
	flows map[string]*Flow
}

func NewService(carts *cart.Store, publisher EventPublisher, logger *zap.Logger) *Service {
	return &Service{
		carts:     carts,
		publisher: publisher,
		logger:    logger,
		flows:     make(map[string]*Flow),
	}
}

// Begin snapshots the user's cart into a new draft order, replacing any
// previous flow for that user.
func (s *Service) Begin(ctx context.Context, userID, customerName string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	flow, err := s.beginLocked(userID, customerName)
	if err != nil {
		return domain.Order{}, err
	}
	return flow.Order(), nil
}

func (s *Service) beginLocked(userID, customerName string) (*Flow, error) {
	flow, err := Begin(customerName, s.carts.Lines(userID))
	if err != nil {
		return nil, err
	}
	s.flows[userID] = flow
	return flow, nil
}

// Place finalizes the user's draft order. If no draft exists, or the previous
// cycle already completed, a fresh snapshot of the current cart is taken
// first. On success the cart is cleared and an order-placed event is
// published; a publish failure is logged but never fails the order.
func (s *Service) Place(ctx context.Context, userID, customerName string, payment domain.PaymentMethod, delivery domain.DeliveryMethod) (domain.Order, error) {
	s.mu.Lock()
	flow, ok := s.flows[userID]
	if !ok || flow.placed {
		var err error
		if flow, err = s.beginLocked(userID, customerName); err != nil {
			s.mu.Unlock()
			return domain.Order{}, err
		}
	}

	order, err := flow.PlaceOrder(payment, delivery)
	s.mu.Unlock()
	if err != nil {
		return domain.Order{}, err
	}

	s.carts.Clear(userID)

	if err := s.publisher.OrderPlaced(ctx, userID, order); err != nil {
		s.logger.Error("failed to publish order placed event",
			zap.String("invoice_no", order.InvoiceNo),
			zap.Error(err))
	}

	s.logger.Info("order placed",
		zap.String("user_id", userID),
		zap.String("invoice_no", order.InvoiceNo),
		zap.Int64("grand_total", order.GrandTotal))

	return order, nil
}

// Order returns the user's current order, draft or placed.
func (s *Service) Order(userID string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	flow, ok := s.flows[userID]
	if !ok {
		return domain.Order{}, fmt.Errorf("no active checkout: %w", domain.ErrNotFound)
	}
	return flow.Order(), nil
}

// ExportReceipt renders the user's placed order as a plain-text receipt and
// publishes a receipt-exported event.
func (s *Service) ExportReceipt(ctx context.Context, userID string) (string, error) {
	s.mu.Lock()
	flow, ok := s.flows[userID]
	var order domain.Order
	if ok {
		order = flow.Order()
	}
	placed := ok && flow.placed
	s.mu.Unlock()

	if !placed {
		return "", fmt.Errorf("no placed order: %w", domain.ErrNotFound)
	}

	receipt, err := RenderReceipt(order)
	if err != nil {
		return "", err
	}

	if err := s.publisher.ReceiptExported(ctx, userID, order.InvoiceNo); err != nil {
		s.logger.Error("failed to publish receipt exported event",
			zap.String("invoice_no", order.InvoiceNo),
			zap.Error(err))
	}
	return receipt, nil
}

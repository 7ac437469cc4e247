package checkout

import (
	"fmt"
	"time"

	"github.com/Ahsankhan2345/shopping-hify/internal/domain"
)

// taxPercent is applied to the subtotal. Integer math throughout: the tax is
// truncated once, so Subtotal+TaxAmount always equals GrandTotal exactly.
const taxPercent = 5

// Flow is a single checkout cycle: it takes a snapshot of the cart, prices
// it, and produces a placed Order. The snapshot is a deep copy, so later cart
// mutations never change what the receipt shows. Placed is terminal; a fresh
// cycle on a refilled cart is a new Flow.
type Flow struct {
	order  domain.Order
	placed bool
}

// Begin starts a checkout over the given cart lines. An empty cart blocks
// checkout.
func Begin(customerName string, lines []domain.CartLine) (*Flow, error) {
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}
	if customerName == "" {
		customerName = "Guest User"
	}

	snapshot := make([]domain.CartLine, len(lines))
	copy(snapshot, lines)

	var subtotal int64
	for _, line := range snapshot {
		subtotal += line.Subtotal()
	}
	tax := subtotal * taxPercent / 100

	return &Flow{
		order: domain.Order{
			CustomerName: customerName,
			Lines:        snapshot,
			Subtotal:     subtotal,
			TaxAmount:    tax,
			GrandTotal:   subtotal + tax,
			Status:       domain.OrderStatusDraft,
		},
	}, nil
}

// Order returns the current order record. While the flow is in draft the
// totals are a preview; after PlaceOrder they are final.
func (f *Flow) Order() domain.Order {
	return f.order
}

// PlaceOrder finalizes the draft. Both methods are required and must come
// from their enumerated sets; on a validation failure the flow stays in
// draft. Calling PlaceOrder again after success fails with ErrOrderPlaced.
func (f *Flow) PlaceOrder(payment domain.PaymentMethod, delivery domain.DeliveryMethod) (domain.Order, error) {
	if f.placed {
		return domain.Order{}, domain.ErrOrderPlaced
	}
	if payment == "" || delivery == "" {
		return domain.Order{}, domain.Validationf("both payment and delivery methods are required")
	}
	if !payment.Valid() {
		return domain.Order{}, domain.Validationf("unknown payment method %q", payment)
	}
	if !delivery.Valid() {
		return domain.Order{}, domain.Validationf("unknown delivery method %q", delivery)
	}

	now := time.Now()
	f.order.PaymentMethod = payment
	f.order.DeliveryMethod = delivery
	f.order.PlacedAt = now
	f.order.InvoiceNo = fmt.Sprintf("INV-%d", now.UnixMilli())
	f.order.Status = domain.OrderStatusPlaced
	f.placed = true
	return f.order, nil
}

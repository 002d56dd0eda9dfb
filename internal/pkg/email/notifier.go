package email

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/order"
)

// OrderNotifier emails customers about order events through a Dispatcher
type OrderNotifier struct {
	service    *EmailService
	dispatcher *Dispatcher
}

// NewOrderNotifier wires the email service to order lifecycle events
func NewOrderNotifier(service *EmailService, dispatcher *Dispatcher) *OrderNotifier {
	return &OrderNotifier{service: service, dispatcher: dispatcher}
}

// OrderPlaced queues the confirmation email
func (n *OrderNotifier) OrderPlaced(o *order.Order) {
	snapshot := *o
	n.dispatcher.Dispatch(string(EmailTypeOrderConfirmation), orderFields(&snapshot), func(ctx context.Context) (*SendResult, error) {
		return n.service.SendOrderConfirmationEmail(ctx, &snapshot)
	})
}

// StatusChanged queues the status update email
func (n *OrderNotifier) StatusChanged(o *order.Order) {
	snapshot := *o
	n.dispatcher.Dispatch(string(EmailTypeOrderStatusUpdate), orderFields(&snapshot), func(ctx context.Context) (*SendResult, error) {
		return n.service.SendOrderStatusUpdateEmail(ctx, &snapshot)
	})
}

func orderFields(o *order.Order) logrus.Fields {
	return logrus.Fields{
		"order_id": o.ID,
		"status":   o.Status,
		"to":       o.Customer.Email,
	}
}

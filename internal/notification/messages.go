package notification

import (
	"fmt"

	"github.com/avolkoff/orderpanel/internal/domain/model"
)

// composeMessage builds the user-facing title, body and inbox type for a
// status change.
func composeMessage(orderID int64, status model.OrderStatus) (title, message string, typ model.NotificationType) {
	title = fmt.Sprintf("Order #%d status update", orderID)
	typ = model.NotificationTypeOrderUpdate

	switch status {
	case model.OrderStatusPending:
		message = "Your order has been received and is under review."
	case model.OrderStatusProcessing:
		message = "We started working on your order and will update you on completion."
	case model.OrderStatusCompleted:
		message = "Your order has been completed. Thank you for your trust!"
		typ = model.NotificationTypeOrderCompleted
	case model.OrderStatusPartial:
		message = "Your order was partially delivered and the remaining amount was returned to your balance."
	case model.OrderStatusCancelled:
		message = "Your order was cancelled and the amount was returned to your balance."
		typ = model.NotificationTypeOrderCancelled
	case model.OrderStatusFailed:
		message = "We are sorry, your order failed and the amount was returned to your balance."
		typ = model.NotificationTypeOrderFailed
	default:
		message = fmt.Sprintf("Your order status changed to: %s", status)
	}

	return title, message, typ
}

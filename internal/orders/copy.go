package orders

import (
	"fmt"

	"github.com/rassdread/homecheff-backend/pkg/enums"
)

// statusCopy is the buyer-facing notification text per status, Dutch first
// like the rest of the product.
type statusCopy struct {
	Title string
	Body  string
}

var buyerCopyByStatus = map[enums.OrderStatus]statusCopy{
	enums.OrderStatusConfirmed: {
		Title: "Bestelling bevestigd",
		Body:  "Je bestelling %s is bevestigd door de verkoper.",
	},
	enums.OrderStatusProcessing: {
		Title: "Bestelling in voorbereiding",
		Body:  "Je bestelling %s wordt klaargemaakt.",
	},
	enums.OrderStatusShipped: {
		Title: "Bestelling onderweg",
		Body:  "Je bestelling %s is onderweg of klaar om op te halen.",
	},
	enums.OrderStatusDelivered: {
		Title: "Bestelling bezorgd",
		Body:  "Je bestelling %s is bezorgd. Laat een review achter!",
	},
	enums.OrderStatusCancelled: {
		Title: "Bestelling geannuleerd",
		Body:  "Je bestelling %s is geannuleerd.",
	},
}

// buyerCopy renders the notification for a status change. Unknown statuses
// get a generic fallback so the notification is never dropped on copy.
func buyerCopy(status enums.OrderStatus, orderNumber string) statusCopy {
	c, ok := buyerCopyByStatus[status]
	if !ok {
		c = statusCopy{
			Title: "Bestelling bijgewerkt",
			Body:  "De status van je bestelling %s is gewijzigd.",
		}
	}
	return statusCopy{Title: c.Title, Body: fmt.Sprintf(c.Body, orderNumber)}
}

// systemMessageCopy is the structured chat line appended on a status change.
func systemMessageCopy(status enums.OrderStatus, orderNumber string) string {
	return fmt.Sprintf("Bestelling %s heeft nu de status %s.", orderNumber, status)
}

// Package notifications turns broker events into operator log lines.
package notifications

import (
	"encoding/json"
	"fmt"
	"log"

	"autocare/internal/services"

	"github.com/streadway/amqp"
)

// Handle processes one delivery from the events queue.
func Handle(msg amqp.Delivery) error {
	return Dispatch(msg.RoutingKey, msg.Body)
}

// Dispatch decodes body according to routingKey and logs the notification.
// Unknown routing keys are logged and accepted.
func Dispatch(routingKey string, body []byte) error {
	switch routingKey {
	case services.RoutingOrderPlaced:
		var event services.OrderPlacedEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return fmt.Errorf("failed to decode %s: %w", routingKey, err)
		}
		log.Printf("New order %s from %s (%s), %d line(s), total %s BHD, payment: %s",
			event.OrderNumber, event.CustomerName, event.CustomerPhone, event.Items, event.Total, event.PaymentMethod)
	case services.RoutingAppointmentBooked:
		var event services.AppointmentBookedEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return fmt.Errorf("failed to decode %s: %w", routingKey, err)
		}
		log.Printf("Appointment %d requested for service %d on %s at %s",
			event.AppointmentID, event.ServiceID, event.Date, event.Time)
	default:
		log.Printf("Ignoring event %s: %s", routingKey, body)
	}
	return nil
}

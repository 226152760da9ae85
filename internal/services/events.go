package services

import (
	"encoding/json"
	"log"
)

// EventsExchange is the exchange domain events are published to.
const EventsExchange = "autocare.events"

const (
	RoutingOrderPlaced       = "order.placed"
	RoutingAppointmentBooked = "appointment.booked"
)

// EventPublisher sends a message to a broker exchange.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// OrderPlacedEvent is published once an order has been committed.
type OrderPlacedEvent struct {
	OrderNumber   string `json:"order_number"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	PaymentMethod string `json:"payment_method"`
	Total         string `json:"total"`
	Items         int    `json:"items"`
}

// AppointmentBookedEvent is published when an appointment is requested.
type AppointmentBookedEvent struct {
	AppointmentID uint   `json:"appointment_id"`
	UserID        string `json:"user_id"`
	ServiceID     uint   `json:"service_id"`
	Date          string `json:"appointment_date"`
	Time          string `json:"appointment_time"`
}

// publishEvent never fails the caller; broker problems are only logged.
func publishEvent(publisher EventPublisher, routingKey string, event interface{}) {
	if publisher == nil {
		log.Printf("Event publisher is not configured. Skipping %s event.", routingKey)
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := publisher.Publish(EventsExchange, routingKey, body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", routingKey, err)
		return
	}
	log.Printf("Published %s event", routingKey)
}

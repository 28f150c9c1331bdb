package notifications

import "fmt"

// Template is the visible part of a push plus the type tag the app routes on.
type Template struct {
	Title string
	Body  string
	Type  string
}

type OrderStatus string

const (
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusReadyForPickup OrderStatus = "ready_for_pickup"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusNearby         OrderStatus = "nearby"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

const orderStatusType = "order_status"

type statusTemplate struct {
	title string
	body  func(restaurant string) string
}

var orderStatusTemplates = map[OrderStatus]statusTemplate{
	StatusConfirmed: {
		title: "✅ Order Confirmed",
		body:  func(r string) string { return fmt.Sprintf("Your order from %s has been confirmed.", r) },
	},
	StatusPreparing: {
		title: "👨‍🍳 Preparing Your Food",
		body:  func(r string) string { return fmt.Sprintf("%s is preparing your order.", r) },
	},
	StatusReadyForPickup: {
		title: "✨ Order Ready",
		body:  func(r string) string { return fmt.Sprintf("Your order from %s is ready for pickup!", r) },
	},
	StatusOutForDelivery: {
		title: "🛵 On the Way",
		body:  func(r string) string { return fmt.Sprintf("Your order from %s is on the way!", r) },
	},
	StatusNearby: {
		title: "📍 Driver Nearby",
		body:  func(string) string { return "Your driver is less than 1 km away!" },
	},
	StatusDelivered: {
		title: "🎉 Delivered!",
		body:  func(r string) string { return fmt.Sprintf("Your order from %s has been delivered. Enjoy your meal!", r) },
	},
	StatusCancelled: {
		title: "❌ Order Cancelled",
		body:  func(r string) string { return fmt.Sprintf("Your order from %s has been cancelled.", r) },
	},
}

// Known reports whether s has its own template.
func (s OrderStatus) Known() bool {
	_, ok := orderStatusTemplates[s]
	return ok
}

// OrderStatusTemplate renders the push for an order status change. eta is only used for
// out_for_delivery. Unknown statuses get a generic update echoing the raw value.
func OrderStatusTemplate(status OrderStatus, restaurant, eta string) Template {
	t, ok := orderStatusTemplates[status]
	if !ok {
		return Template{
			Title: "Order Update",
			Body:  fmt.Sprintf("Your order from %s status: %s", restaurant, status),
			Type:  orderStatusType,
		}
	}

	body := t.body(restaurant)
	if status == StatusOutForDelivery && eta != "" {
		body += " ETA: " + eta
	}
	return Template{Title: t.title, Body: body, Type: orderStatusType}
}

package response

// Что стало с доставкой вебхука
const (
	WebhookQueued  = "queued"
	WebhookIgnored = "ignored"
	WebhookPong    = "pong"
)

type WebhookResponse struct {
	Event      string `json:"event"`
	DeliveryId string `json:"delivery_id"`
	Status     string `json:"status"`
}

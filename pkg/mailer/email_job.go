package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending an
// order confirmation. Text is the fallback when HTML rendering fails.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	Template string         `json:"template,omitempty"` // currently only "order_confirmation"
	Data     map[string]any `json:"data,omitempty"`
}

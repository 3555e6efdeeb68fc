package mailer

// NotificationJob is the JSON payload put on the RabbitMQ queue for outbound
// notifications. Kind selects an HTML template in pkg/mailer/templates; when it
// is empty the worker sends Subject/Text as-is.
type NotificationJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	Kind    string `json:"kind,omitempty"` // "reminder" or "expense_alert"
}

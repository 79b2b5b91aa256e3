// Package queue publishes and consumes domain events over RabbitMQ.
package queue

// InviteCreatedEvent is published when a new invite code is issued. It
// carries everything a downstream mailer needs to notify the recipient
// without querying the primary database.
type InviteCreatedEvent struct {
	InviteCodeID   string `json:"invite_code_id"`
	ConferenceID   string `json:"conference_id"`
	ConferenceName string `json:"conference_name"`
	CreatedBy      string `json:"created_by"`
	RecipientEmail string `json:"recipient_email"`
	RecipientName  string `json:"recipient_name"`
	CreatedAt      string `json:"created_at"`
}

const inviteQueueName = "invite.created"

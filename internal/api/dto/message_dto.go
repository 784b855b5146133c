package dto

import (
	"time"

	"github.com/offloadr/connect-api/internal/domain"
)

// MessageSendRequest payload for posting to a workspace channel. Type picks
// the partition for staff/admin; clients always post to the client
// partition regardless of this field.
type MessageSendRequest struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// GlobalMessageSendRequest payload for the global staff channel. RecipientID
// set makes it a direct message.
type GlobalMessageSendRequest struct {
	Text        string `json:"text"`
	RecipientID string `json:"recipient_id,omitempty"`
}

// MessageResponse is the public shape of a message.
type MessageResponse struct {
	ID            string    `json:"id"`
	ChannelID     string    `json:"channel_id"`
	SenderID      string    `json:"sender_id"`
	SenderName    string    `json:"sender_name"`
	SenderRole    string    `json:"sender_role,omitempty"`
	Type          string    `json:"type"`
	Text          string    `json:"text"`
	RecipientID   string    `json:"recipient_id,omitempty"`
	RecipientName string    `json:"recipient_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewMessageResponse maps a domain message.
func NewMessageResponse(msg *domain.Message) MessageResponse {
	resp := MessageResponse{
		ID:         msg.ID,
		ChannelID:  msg.ChannelID,
		SenderID:   msg.SenderID,
		SenderName: msg.SenderName,
		Type:       string(msg.Type),
		Text:       msg.Text,
		CreatedAt:  msg.CreatedAt,
	}
	if msg.SenderRole != nil {
		resp.SenderRole = *msg.SenderRole
	}
	if msg.RecipientID != nil {
		resp.RecipientID = *msg.RecipientID
	}
	if msg.RecipientName != nil {
		resp.RecipientName = *msg.RecipientName
	}
	return resp
}

// NewMessageResponses maps a slice of messages.
func NewMessageResponses(msgs []domain.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(msgs))
	for i := range msgs {
		out = append(out, NewMessageResponse(&msgs[i]))
	}
	return out
}

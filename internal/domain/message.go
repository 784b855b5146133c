package domain

import "time"

// GlobalStaffChannelID is the sentinel channel id for the cross-workspace
// staff chat shared by all staff and admins.
const GlobalStaffChannelID = "GLOBAL_STAFF_CHAT"

// MessageType partitions a channel into the client-facing and team-internal
// conversations.
type MessageType string

const (
	MessageTypeClient MessageType = "client"
	MessageTypeStaff  MessageType = "staff"
)

// Message is one immutable chat entry. ChannelID is either a workspace id or
// GlobalStaffChannelID. RecipientID is set only for staff-to-staff direct
// messages on the global channel; nil means broadcast to the channel's
// audience.
type Message struct {
	ID            string
	ChannelID     string
	SenderID      string
	SenderName    string
	SenderRole    *string // staff specialty label for display, e.g. "Graphic Designer"
	Type          MessageType
	Text          string
	RecipientID   *string
	RecipientName *string
	CreatedAt     time.Time
}

// IsDirect reports whether the message is addressed to a single recipient.
func (m *Message) IsDirect() bool {
	return m.RecipientID != nil && *m.RecipientID != ""
}

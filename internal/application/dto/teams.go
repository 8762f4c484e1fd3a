package dto

import (
	"fmt"

	"github.com/graphgate/graphgate/pkg/constants"
)

// SendMessageRequest is the body for chat and channel message posts.
type SendMessageRequest struct {
	Content     string `json:"content" validate:"required"`
	ContentType string `json:"contentType" validate:"omitempty,oneof=text html"`
}

// Validate applies schema checks and the message length cap.
func (r *SendMessageRequest) Validate() ValidationErrors {
	if errs := Check(r); errs != nil {
		return errs
	}
	if len(r.Content) > constants.MaxMessageLength {
		return Invalid("content", fmt.Sprintf("must be at most %d characters", constants.MaxMessageLength))
	}
	return nil
}

// Graph renders the chatMessage payload.
func (r *SendMessageRequest) Graph() map[string]interface{} {
	contentType := r.ContentType
	if contentType == "" {
		contentType = "text"
	}
	return map[string]interface{}{
		"body": map[string]interface{}{
			"contentType": contentType,
			"content":     r.Content,
		},
	}
}

// CreateChatRequest is the body of POST /api/teams/chats. Members are the
// other participants; the caller is added implicitly by Graph.
type CreateChatRequest struct {
	Members []string `json:"members" validate:"required,min=1,dive,email"`
	Topic   string   `json:"topic"`
}

// Validate applies schema checks and rejects a group chat without a topic.
func (r *CreateChatRequest) Validate() ValidationErrors {
	if errs := Check(r); errs != nil {
		return errs
	}
	if len(r.Members) > 1 && r.Topic == "" {
		return Invalid("topic", "is required for group chats")
	}
	return nil
}

// Graph renders the chat payload. One member means oneOnOne, more means
// group.
func (r *CreateChatRequest) Graph() map[string]interface{} {
	chatType := "oneOnOne"
	if len(r.Members) > 1 {
		chatType = "group"
	}
	members := make([]map[string]interface{}, 0, len(r.Members))
	for _, upn := range r.Members {
		members = append(members, map[string]interface{}{
			"@odata.type":     "#microsoft.graph.aadUserConversationMember",
			"roles":           []string{"owner"},
			"user@odata.bind": "https://graph.microsoft.com/v1.0/users('" + upn + "')",
		})
	}
	payload := map[string]interface{}{
		"chatType": chatType,
		"members":  members,
	}
	if r.Topic != "" {
		payload["topic"] = r.Topic
	}
	return payload
}

// CreateMeetingRequest is the body of POST /api/teams/meetings.
type CreateMeetingRequest struct {
	Subject string        `json:"subject" validate:"required"`
	Start   *DateTimeZone `json:"startDateTime" validate:"required"`
	End     *DateTimeZone `json:"endDateTime" validate:"required"`
}

// Validate applies schema checks.
func (r *CreateMeetingRequest) Validate() ValidationErrors {
	return Check(r)
}

// Graph renders the onlineMeeting payload. Graph wants bare ISO strings
// here, not dateTimeTimeZone objects.
func (r *CreateMeetingRequest) Graph() map[string]interface{} {
	return map[string]interface{}{
		"subject":       r.Subject,
		"startDateTime": r.Start.DateTime,
		"endDateTime":   r.End.DateTime,
	}
}

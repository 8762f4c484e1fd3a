package dto

// SendMailRequest is the body of POST /api/mail/send.
type SendMailRequest struct {
	To      []string  `json:"to" validate:"required,min=1,dive,email"`
	Cc      []string  `json:"cc" validate:"omitempty,dive,email"`
	Bcc     []string  `json:"bcc" validate:"omitempty,dive,email"`
	Subject string    `json:"subject" validate:"required"`
	Body    *FlexBody `json:"body"`

	SaveToSentItems *bool `json:"saveToSentItems"`
}

// Validate applies schema checks beyond struct tags.
func (r *SendMailRequest) Validate() ValidationErrors {
	if errs := Check(r); errs != nil {
		return errs
	}
	if r.Body == nil || r.Body.IsZero() {
		return Invalid("body", "is required")
	}
	return nil
}

// Graph renders the sendMail payload.
func (r *SendMailRequest) Graph() map[string]interface{} {
	save := true
	if r.SaveToSentItems != nil {
		save = *r.SaveToSentItems
	}
	return map[string]interface{}{
		"message": map[string]interface{}{
			"subject":       r.Subject,
			"body":          r.Body.Graph(),
			"toRecipients":  recipients(r.To),
			"ccRecipients":  recipients(r.Cc),
			"bccRecipients": recipients(r.Bcc),
		},
		"saveToSentItems": save,
	}
}

func recipients(addresses []string) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(addresses))
	for _, addr := range addresses {
		out = append(out, map[string]interface{}{
			"emailAddress": map[string]interface{}{"address": addr},
		})
	}
	return out
}

// ReplyMailRequest is the body of POST /api/mail/messages/:id/reply.
type ReplyMailRequest struct {
	Comment  string `json:"comment" validate:"required"`
	ReplyAll bool   `json:"replyAll"`
}

// Validate applies schema checks.
func (r *ReplyMailRequest) Validate() ValidationErrors {
	return Check(r)
}

// MoveMailRequest is the body of POST /api/mail/messages/:id/move.
type MoveMailRequest struct {
	DestinationID string `json:"destinationId" validate:"required"`
}

// Validate applies schema checks.
func (r *MoveMailRequest) Validate() ValidationErrors {
	return Check(r)
}

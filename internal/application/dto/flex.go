package dto

import (
	"encoding/json"
	"strings"
)

// FlexBody accepts a message body as either a bare string or a Graph
// {contentType, content} object, and canonicalizes to the object form.
type FlexBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// UnmarshalJSON implements the string-or-object acceptance.
func (b *FlexBody) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		b.ContentType = "text"
		b.Content = asString
		return nil
	}
	type plain FlexBody
	var asObject plain
	if err := json.Unmarshal(data, &asObject); err != nil {
		return err
	}
	*b = FlexBody(asObject)
	if b.ContentType == "" {
		b.ContentType = "text"
	}
	return nil
}

// IsZero reports whether the body was absent.
func (b *FlexBody) IsZero() bool {
	return b.Content == "" && b.ContentType == ""
}

// Graph renders the canonical Graph itemBody shape.
func (b *FlexBody) Graph() map[string]interface{} {
	contentType := b.ContentType
	if contentType == "" {
		contentType = "text"
	}
	return map[string]interface{}{
		"contentType": contentType,
		"content":     b.Content,
	}
}

// FlexAttendee accepts an attendee as either a bare email string or a full
// Graph {emailAddress:{address,name}} object. Bare emails canonicalize with
// name = the address's local part.
type FlexAttendee struct {
	Type    string
	Address string
	Name    string
}

// UnmarshalJSON implements the string-or-object acceptance.
func (a *FlexAttendee) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		a.Address = asString
		a.Name = localPart(asString)
		return nil
	}
	var asObject struct {
		Type         string `json:"type"`
		EmailAddress struct {
			Address string `json:"address"`
			Name    string `json:"name"`
		} `json:"emailAddress"`
	}
	if err := json.Unmarshal(data, &asObject); err != nil {
		return err
	}
	a.Type = asObject.Type
	a.Address = asObject.EmailAddress.Address
	a.Name = asObject.EmailAddress.Name
	if a.Name == "" {
		a.Name = localPart(a.Address)
	}
	return nil
}

// Graph renders the canonical Graph attendee shape. Type defaults to
// "required".
func (a *FlexAttendee) Graph() map[string]interface{} {
	attendeeType := a.Type
	if attendeeType == "" {
		attendeeType = "required"
	}
	return map[string]interface{}{
		"type": attendeeType,
		"emailAddress": map[string]interface{}{
			"address": a.Address,
			"name":    a.Name,
		},
	}
}

func localPart(address string) string {
	if i := strings.Index(address, "@"); i > 0 {
		return address[:i]
	}
	return address
}

// AttendeesGraph renders a slice of attendees to the Graph shape.
func AttendeesGraph(attendees []FlexAttendee) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(attendees))
	for i := range attendees {
		out = append(out, attendees[i].Graph())
	}
	return out
}

// DateTimeZone is the Graph {dateTime, timeZone} pair. TimeZone defaults to
// UTC when omitted.
type DateTimeZone struct {
	DateTime string `json:"dateTime" validate:"required"`
	TimeZone string `json:"timeZone"`
}

// Graph renders the pair with the timezone default applied.
func (d *DateTimeZone) Graph() map[string]interface{} {
	tz := d.TimeZone
	if tz == "" {
		tz = "UTC"
	}
	return map[string]interface{}{
		"dateTime": d.DateTime,
		"timeZone": tz,
	}
}

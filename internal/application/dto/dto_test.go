package dto

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexBodyStringForm(t *testing.T) {
	var b FlexBody
	require.NoError(t, json.Unmarshal([]byte(`"hello world"`), &b))
	assert.Equal(t, "text", b.ContentType)
	assert.Equal(t, "hello world", b.Content)
}

func TestFlexBodyObjectForm(t *testing.T) {
	var b FlexBody
	require.NoError(t, json.Unmarshal([]byte(`{"contentType":"html","content":"<b>hi</b>"}`), &b))
	assert.Equal(t, "html", b.ContentType)
	assert.Equal(t, "<b>hi</b>", b.Content)
}

func TestFlexBodyObjectDefaultsContentType(t *testing.T) {
	var b FlexBody
	require.NoError(t, json.Unmarshal([]byte(`{"content":"plain"}`), &b))
	assert.Equal(t, "text", b.ContentType)
}

func TestFlexAttendeeBareEmail(t *testing.T) {
	var a FlexAttendee
	require.NoError(t, json.Unmarshal([]byte(`"alice@example.com"`), &a))

	rendered := a.Graph()
	assert.Equal(t, "required", rendered["type"])
	email := rendered["emailAddress"].(map[string]interface{})
	assert.Equal(t, "alice@example.com", email["address"])
	assert.Equal(t, "alice", email["name"])
}

func TestFlexAttendeeFullObject(t *testing.T) {
	var a FlexAttendee
	require.NoError(t, json.Unmarshal([]byte(`{"type":"optional","emailAddress":{"address":"bob@example.com","name":"Bob"}}`), &a))

	rendered := a.Graph()
	assert.Equal(t, "optional", rendered["type"])
	email := rendered["emailAddress"].(map[string]interface{})
	assert.Equal(t, "Bob", email["name"])
}

func TestSendMailRequestValidation(t *testing.T) {
	var req SendMailRequest
	require.NoError(t, json.Unmarshal([]byte(`{"to":["a@example.com"],"subject":"hi","body":"text body"}`), &req))
	assert.Nil(t, req.Validate())

	payload := req.Graph()
	assert.Equal(t, true, payload["saveToSentItems"])
	message := payload["message"].(map[string]interface{})
	body := message["body"].(map[string]interface{})
	assert.Equal(t, "text", body["contentType"])
}

func TestSendMailRequestRejectsBadEmail(t *testing.T) {
	var req SendMailRequest
	require.NoError(t, json.Unmarshal([]byte(`{"to":["not-an-email"],"subject":"hi","body":"b"}`), &req))
	errs := req.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs.Details(), "to[0]")
}

func TestSendMailRequestRequiresBody(t *testing.T) {
	var req SendMailRequest
	require.NoError(t, json.Unmarshal([]byte(`{"to":["a@example.com"],"subject":"hi"}`), &req))
	errs := req.Validate()
	require.NotNil(t, errs)
	assert.Equal(t, "body", errs[0].Field)
}

func TestCreateEventRequestNestedFieldPath(t *testing.T) {
	var req CreateEventRequest
	require.NoError(t, json.Unmarshal([]byte(`{"subject":"standup","start":{"timeZone":"UTC"},"end":{"dateTime":"2026-01-01T10:00:00"}}`), &req))
	errs := req.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs.Details(), "start.dateTime")
}

func TestFindMeetingTimesCanonicalizesSpellings(t *testing.T) {
	// Alternate spellings on both the constraint key and the slot list.
	raw := `{
		"attendees": ["alice@example.com"],
		"timeConstraints": {
			"timeSlots": [{
				"start": {"dateTime": "2026-01-05T09:00:00"},
				"end":   {"dateTime": "2026-01-05T17:00:00"}
			}]
		}
	}`
	var req FindMeetingTimesRequest
	require.NoError(t, json.Unmarshal([]byte(raw), &req))
	require.Nil(t, req.Validate())

	payload := req.Graph()
	constraint := payload["timeConstraint"].(map[string]interface{})
	slots, ok := constraint["timeslots"].([]map[string]interface{})
	require.True(t, ok, "expected canonical lower-case timeslots key")
	require.Len(t, slots, 1)

	attendees := payload["attendees"].([]map[string]interface{})
	require.Len(t, attendees, 1)
	assert.Equal(t, "required", attendees[0]["type"])
}

func TestFindMeetingTimesRequiresConstraint(t *testing.T) {
	var req FindMeetingTimesRequest
	require.NoError(t, json.Unmarshal([]byte(`{"attendees":["a@example.com"]}`), &req))
	errs := req.Validate()
	require.NotNil(t, errs)
	assert.Equal(t, "timeConstraint.timeslots", errs[0].Field)
}

func TestAvailabilityShorthandRewrites(t *testing.T) {
	var req AvailabilityRequest
	require.NoError(t, json.Unmarshal([]byte(`{"users":["a@example.com"],"start":"2026-01-05T09:00:00","end":"2026-01-05T17:00:00"}`), &req))
	require.Nil(t, req.Validate())

	payload := req.Graph()
	start := payload["startTime"].(map[string]interface{})
	assert.Equal(t, "2026-01-05T09:00:00", start["dateTime"])
	assert.Equal(t, "UTC", start["timeZone"])
	assert.Equal(t, 30, payload["availabilityViewInterval"])
}

func TestAvailabilityRequiresWindow(t *testing.T) {
	var req AvailabilityRequest
	require.NoError(t, json.Unmarshal([]byte(`{"users":["a@example.com"]}`), &req))
	errs := req.Validate()
	require.NotNil(t, errs)
	assert.Equal(t, "timeSlots", errs[0].Field)
}

func TestSendMessageRequestLengthCap(t *testing.T) {
	req := SendMessageRequest{Content: strings.Repeat("a", 10001)}
	errs := req.Validate()
	require.NotNil(t, errs)
	assert.Equal(t, "content", errs[0].Field)

	req.Content = strings.Repeat("a", 10000)
	assert.Nil(t, req.Validate())
}

func TestSendMessageRequestContentTypeEnum(t *testing.T) {
	req := SendMessageRequest{Content: "hi", ContentType: "markdown"}
	errs := req.Validate()
	require.NotNil(t, errs)
	assert.Equal(t, "contentType", errs[0].Field)
}

func TestCreateChatRequestGroupNeedsTopic(t *testing.T) {
	req := CreateChatRequest{Members: []string{"a@example.com", "b@example.com"}}
	errs := req.Validate()
	require.NotNil(t, errs)
	assert.Equal(t, "topic", errs[0].Field)

	req.Topic = "planning"
	require.Nil(t, req.Validate())
	assert.Equal(t, "group", req.Graph()["chatType"])
}

func TestCreateChatRequestOneOnOne(t *testing.T) {
	req := CreateChatRequest{Members: []string{"a@example.com"}}
	require.Nil(t, req.Validate())
	assert.Equal(t, "oneOnOne", req.Graph()["chatType"])
}

func TestSearchRequestShortcuts(t *testing.T) {
	req := SearchRequest{Query: "q3 report", EntityTypes: []string{"mail", "files", "message"}}
	require.Nil(t, req.Validate())
	assert.Equal(t, []string{"message", "driveItem"}, req.ResolvedEntityTypes())
}

func TestSearchRequestDefaultsToMessages(t *testing.T) {
	req := SearchRequest{Query: "hello"}
	assert.Equal(t, []string{"message"}, req.ResolvedEntityTypes())
}

func TestSearchRequestRejectsUnknownEntityType(t *testing.T) {
	req := SearchRequest{Query: "hello", EntityTypes: []string{"bogus"}}
	errs := req.Validate()
	require.NotNil(t, errs)
	assert.Equal(t, "entityTypes", errs[0].Field)
}

func TestSearchRequestLimitBounds(t *testing.T) {
	for _, limit := range []int{-1, 101, 500} {
		req := SearchRequest{Query: "hello", Limit: limit}
		errs := req.Validate()
		require.NotNil(t, errs, "limit=%d", limit)
		assert.Equal(t, "limit", errs[0].Field)
		assert.Contains(t, errs[0].Message, "between 1 and 100")
	}

	// Absent limit is valid and falls back to the search default.
	req := SearchRequest{Query: "hello"}
	require.Nil(t, req.Validate())
	requests := req.Graph()["requests"].([]map[string]interface{})
	assert.Equal(t, 25, requests[0]["size"])

	req = SearchRequest{Query: "hello", Limit: 100}
	require.Nil(t, req.Validate())
}

func TestUpdateEventRequestNeedsAField(t *testing.T) {
	var req UpdateEventRequest
	errs := req.Validate()
	require.NotNil(t, errs)

	subject := "new subject"
	req.Subject = &subject
	assert.Nil(t, req.Validate())
}

func TestSwitchSourceRequestEnum(t *testing.T) {
	req := SwitchSourceRequest{Source: "vault"}
	errs := req.Validate()
	require.NotNil(t, errs)
	assert.Equal(t, "source", errs[0].Field)

	req.Source = "external"
	assert.Nil(t, req.Validate())
}

func TestParseLimit(t *testing.T) {
	n, errs := ParseLimit("", 20, 100)
	require.Nil(t, errs)
	assert.Equal(t, 20, n)

	n, errs = ParseLimit("50", 20, 100)
	require.Nil(t, errs)
	assert.Equal(t, 50, n)

	_, errs = ParseLimit("0", 20, 100)
	assert.NotNil(t, errs)

	_, errs = ParseLimit("101", 20, 100)
	assert.NotNil(t, errs)

	_, errs = ParseLimit("abc", 20, 100)
	assert.NotNil(t, errs)
}

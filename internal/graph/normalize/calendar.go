package normalize

// Event flattens a Graph calendar event.
func Event(e Entity) Entity {
	return Entity{
		"id":                   str(e, "id"),
		"subject":              str(e, "subject"),
		"bodyPreview":          str(e, "bodyPreview"),
		"start":                dateTimeZone(e, "start"),
		"end":                  dateTimeZone(e, "end"),
		"location":             nestedStr(e, "location", "displayName"),
		"organizer":            emailAddress(nested(e, "organizer")),
		"attendees":            eventAttendees(list(e, "attendees")),
		"isAllDay":             boolean(e, "isAllDay"),
		"isCancelled":          boolean(e, "isCancelled"),
		"isOnlineMeeting":      boolean(e, "isOnlineMeeting"),
		"onlineMeetingUrl":     onlineMeetingURL(e),
		"responseStatus":       nestedStr(e, "responseStatus", "response"),
		"webLink":              str(e, "webLink"),
		"seriesMasterId":       str(e, "seriesMasterId"),
		"recurrence":           e["recurrence"],
	}
}

func eventAttendees(items []interface{}) []Entity {
	out := make([]Entity, 0, len(items))
	for _, item := range items {
		m, ok := item.(Entity)
		if !ok {
			continue
		}
		out = append(out, Entity{
			"name":     nestedStr(m, "emailAddress", "name"),
			"address":  nestedStr(m, "emailAddress", "address"),
			"type":     str(m, "type"),
			"response": nestedStr(m, "status", "response"),
		})
	}
	return out
}

func onlineMeetingURL(e Entity) string {
	if u := str(e, "onlineMeetingUrl"); u != "" {
		return u
	}
	return nestedStr(e, "onlineMeeting", "joinUrl")
}

// MeetingTimeSuggestion flattens one findMeetingTimes suggestion.
func MeetingTimeSuggestion(e Entity) Entity {
	return Entity{
		"confidence":   number(e, "confidence"),
		"organizerAvailability": str(e, "organizerAvailability"),
		"meetingTimeSlot": Entity{
			"start": dateTimeZone(nested(e, "meetingTimeSlot"), "start"),
			"end":   dateTimeZone(nested(e, "meetingTimeSlot"), "end"),
		},
		"attendeeAvailability": e["attendeeAvailability"],
	}
}

// ScheduleInformation flattens one getSchedule entry.
func ScheduleInformation(e Entity) Entity {
	return Entity{
		"scheduleId":       str(e, "scheduleId"),
		"availabilityView": str(e, "availabilityView"),
		"scheduleItems":    scheduleItems(list(e, "scheduleItems")),
	}
}

func scheduleItems(items []interface{}) []Entity {
	out := make([]Entity, 0, len(items))
	for _, item := range items {
		m, ok := item.(Entity)
		if !ok {
			continue
		}
		out = append(out, Entity{
			"status":  str(m, "status"),
			"subject": str(m, "subject"),
			"start":   dateTimeZone(m, "start"),
			"end":     dateTimeZone(m, "end"),
		})
	}
	return out
}

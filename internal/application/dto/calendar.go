package dto

// CreateEventRequest is the body of POST /api/calendar/create.
type CreateEventRequest struct {
	Subject   string         `json:"subject" validate:"required"`
	Start     *DateTimeZone  `json:"start" validate:"required"`
	End       *DateTimeZone  `json:"end" validate:"required"`
	Body      *FlexBody      `json:"body"`
	Location  string         `json:"location"`
	Attendees []FlexAttendee `json:"attendees"`
	IsOnline  bool           `json:"isOnlineMeeting"`
}

// Validate applies schema checks. The nested start/end dateTime requirements
// surface as per-field messages ("start.dateTime is required").
func (r *CreateEventRequest) Validate() ValidationErrors {
	return Check(r)
}

// Graph renders the event payload.
func (r *CreateEventRequest) Graph() map[string]interface{} {
	payload := map[string]interface{}{
		"subject": r.Subject,
		"start":   r.Start.Graph(),
		"end":     r.End.Graph(),
	}
	if r.Body != nil && !r.Body.IsZero() {
		payload["body"] = r.Body.Graph()
	}
	if r.Location != "" {
		payload["location"] = map[string]interface{}{"displayName": r.Location}
	}
	if len(r.Attendees) > 0 {
		payload["attendees"] = AttendeesGraph(r.Attendees)
	}
	if r.IsOnline {
		payload["isOnlineMeeting"] = true
		payload["onlineMeetingProvider"] = "teamsForBusiness"
	}
	return payload
}

// UpdateEventRequest is the body of PATCH /api/calendar/events/:id. All
// fields are optional but at least one must be present.
type UpdateEventRequest struct {
	Subject   *string        `json:"subject"`
	Start     *DateTimeZone  `json:"start"`
	End       *DateTimeZone  `json:"end"`
	Body      *FlexBody      `json:"body"`
	Location  *string        `json:"location"`
	Attendees []FlexAttendee `json:"attendees"`
}

// Validate requires at least one updatable field.
func (r *UpdateEventRequest) Validate() ValidationErrors {
	if r.Subject == nil && r.Start == nil && r.End == nil &&
		r.Body == nil && r.Location == nil && len(r.Attendees) == 0 {
		return Invalid("request", "at least one field must be provided")
	}
	if r.Start != nil && r.Start.DateTime == "" {
		return Invalid("start.dateTime", "is required")
	}
	if r.End != nil && r.End.DateTime == "" {
		return Invalid("end.dateTime", "is required")
	}
	return nil
}

// Graph renders only the provided fields.
func (r *UpdateEventRequest) Graph() map[string]interface{} {
	payload := map[string]interface{}{}
	if r.Subject != nil {
		payload["subject"] = *r.Subject
	}
	if r.Start != nil {
		payload["start"] = r.Start.Graph()
	}
	if r.End != nil {
		payload["end"] = r.End.Graph()
	}
	if r.Body != nil && !r.Body.IsZero() {
		payload["body"] = r.Body.Graph()
	}
	if r.Location != nil {
		payload["location"] = map[string]interface{}{"displayName": *r.Location}
	}
	if len(r.Attendees) > 0 {
		payload["attendees"] = AttendeesGraph(r.Attendees)
	}
	return payload
}

// TimeSlot is one candidate window.
type TimeSlot struct {
	Start *DateTimeZone `json:"start"`
	End   *DateTimeZone `json:"end"`
}

// TimeConstraint accepts both "timeslots" and "timeSlots" spellings and
// canonicalizes to lower-case "timeslots".
type TimeConstraint struct {
	ActivityDomain string     `json:"activityDomain"`
	Timeslots      []TimeSlot `json:"timeslots"`
	TimeSlotsAlt   []TimeSlot `json:"timeSlots"`
}

// Slots returns the canonical slot list, whichever spelling carried it.
func (tc *TimeConstraint) Slots() []TimeSlot {
	if len(tc.Timeslots) > 0 {
		return tc.Timeslots
	}
	return tc.TimeSlotsAlt
}

// FindMeetingTimesRequest is the body of POST /api/calendar/findMeetingTimes.
// It accepts "timeConstraint" or "timeConstraints" and attendees as bare
// emails or full objects; Graph() emits the single canonical shape.
type FindMeetingTimesRequest struct {
	Attendees          []FlexAttendee  `json:"attendees" validate:"required,min=1"`
	TimeConstraint     *TimeConstraint `json:"timeConstraint"`
	TimeConstraintsAlt *TimeConstraint `json:"timeConstraints"`
	MeetingDuration    string          `json:"meetingDuration"`
	MaxCandidates      int             `json:"maxCandidates"`
}

func (r *FindMeetingTimesRequest) constraint() *TimeConstraint {
	if r.TimeConstraint != nil {
		return r.TimeConstraint
	}
	return r.TimeConstraintsAlt
}

// Validate rejects a request missing any time constraint.
func (r *FindMeetingTimesRequest) Validate() ValidationErrors {
	if errs := Check(r); errs != nil {
		return errs
	}
	tc := r.constraint()
	if tc == nil || len(tc.Slots()) == 0 {
		return Invalid("timeConstraint.timeslots", "is required")
	}
	for _, slot := range tc.Slots() {
		if slot.Start == nil || slot.Start.DateTime == "" {
			return Invalid("timeConstraint.timeslots.start.dateTime", "is required")
		}
		if slot.End == nil || slot.End.DateTime == "" {
			return Invalid("timeConstraint.timeslots.end.dateTime", "is required")
		}
	}
	return nil
}

// Graph renders the canonical findMeetingTimes payload: full attendee
// objects and lower-case "timeslots".
func (r *FindMeetingTimesRequest) Graph() map[string]interface{} {
	tc := r.constraint()
	slots := make([]map[string]interface{}, 0, len(tc.Slots()))
	for _, slot := range tc.Slots() {
		slots = append(slots, map[string]interface{}{
			"start": slot.Start.Graph(),
			"end":   slot.End.Graph(),
		})
	}
	constraint := map[string]interface{}{"timeslots": slots}
	if tc.ActivityDomain != "" {
		constraint["activityDomain"] = tc.ActivityDomain
	}
	payload := map[string]interface{}{
		"attendees":      AttendeesGraph(r.Attendees),
		"timeConstraint": constraint,
	}
	if r.MeetingDuration != "" {
		payload["meetingDuration"] = r.MeetingDuration
	}
	if r.MaxCandidates > 0 {
		payload["maxCandidates"] = r.MaxCandidates
	}
	return payload
}

// AvailabilityRequest is the body of POST /api/calendar/availability. It
// accepts the canonical {users, timeSlots} or the shorthand
// {start, end, users}; the shorthand rewrites into a single-slot canonical
// form.
type AvailabilityRequest struct {
	Users     []string   `json:"users" validate:"required,min=1,dive,email"`
	TimeSlots []TimeSlot `json:"timeSlots"`
	Start     string     `json:"start"`
	End       string     `json:"end"`

	IntervalMinutes int `json:"intervalMinutes"`
}

// Validate requires either the canonical slot list or the shorthand pair.
func (r *AvailabilityRequest) Validate() ValidationErrors {
	if errs := Check(r); errs != nil {
		return errs
	}
	if len(r.TimeSlots) == 0 {
		if r.Start == "" || r.End == "" {
			return Invalid("timeSlots", "either timeSlots or start/end is required")
		}
		return nil
	}
	for _, slot := range r.TimeSlots {
		if slot.Start == nil || slot.Start.DateTime == "" {
			return Invalid("timeSlots.start.dateTime", "is required")
		}
		if slot.End == nil || slot.End.DateTime == "" {
			return Invalid("timeSlots.end.dateTime", "is required")
		}
	}
	return nil
}

// Graph renders the getSchedule payload, rewriting the shorthand into one
// slot when used.
func (r *AvailabilityRequest) Graph() map[string]interface{} {
	slots := r.TimeSlots
	if len(slots) == 0 {
		slots = []TimeSlot{{
			Start: &DateTimeZone{DateTime: r.Start},
			End:   &DateTimeZone{DateTime: r.End},
		}}
	}
	// getSchedule takes one window; additional slots are collapsed to the
	// span of the first.
	first := slots[0]
	interval := r.IntervalMinutes
	if interval <= 0 {
		interval = 30
	}
	return map[string]interface{}{
		"schedules":                r.Users,
		"startTime":                first.Start.Graph(),
		"endTime":                  first.End.Graph(),
		"availabilityViewInterval": interval,
	}
}

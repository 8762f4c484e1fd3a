package dto

// CreateTaskListRequest is the body of POST /api/tasks/lists.
type CreateTaskListRequest struct {
	DisplayName string `json:"displayName" validate:"required"`
}

// Validate applies schema checks.
func (r *CreateTaskListRequest) Validate() ValidationErrors {
	return Check(r)
}

// CreateTaskRequest is the body of POST /api/tasks/lists/:listId/tasks.
type CreateTaskRequest struct {
	Title       string        `json:"title" validate:"required"`
	Body        *FlexBody     `json:"body"`
	DueDateTime *DateTimeZone `json:"dueDateTime"`
	Importance  string        `json:"importance" validate:"omitempty,oneof=low normal high"`
	ReminderOn  bool          `json:"isReminderOn"`
}

// Validate applies schema checks.
func (r *CreateTaskRequest) Validate() ValidationErrors {
	if errs := Check(r); errs != nil {
		return errs
	}
	if r.DueDateTime != nil && r.DueDateTime.DateTime == "" {
		return Invalid("dueDateTime.dateTime", "is required")
	}
	return nil
}

// Graph renders the todoTask payload.
func (r *CreateTaskRequest) Graph() map[string]interface{} {
	payload := map[string]interface{}{"title": r.Title}
	if r.Body != nil && !r.Body.IsZero() {
		payload["body"] = r.Body.Graph()
	}
	if r.DueDateTime != nil {
		payload["dueDateTime"] = r.DueDateTime.Graph()
	}
	if r.Importance != "" {
		payload["importance"] = r.Importance
	}
	if r.ReminderOn {
		payload["isReminderOn"] = true
	}
	return payload
}

// UpdateTaskRequest is the body of PATCH /api/tasks/lists/:listId/tasks/:id.
type UpdateTaskRequest struct {
	Title       *string       `json:"title"`
	Body        *FlexBody     `json:"body"`
	DueDateTime *DateTimeZone `json:"dueDateTime"`
	Importance  *string       `json:"importance"`
	Status      *string       `json:"status"`
}

// Validate requires at least one field and checks the enums.
func (r *UpdateTaskRequest) Validate() ValidationErrors {
	if r.Title == nil && r.Body == nil && r.DueDateTime == nil && r.Importance == nil && r.Status == nil {
		return Invalid("request", "at least one field must be provided")
	}
	if r.Importance != nil {
		switch *r.Importance {
		case "low", "normal", "high":
		default:
			return Invalid("importance", "must be one of: low, normal, high")
		}
	}
	if r.Status != nil {
		switch *r.Status {
		case "notStarted", "inProgress", "completed", "waitingOnOthers", "deferred":
		default:
			return Invalid("status", "must be a valid task status")
		}
	}
	return nil
}

// Graph renders only the provided fields.
func (r *UpdateTaskRequest) Graph() map[string]interface{} {
	payload := map[string]interface{}{}
	if r.Title != nil {
		payload["title"] = *r.Title
	}
	if r.Body != nil && !r.Body.IsZero() {
		payload["body"] = r.Body.Graph()
	}
	if r.DueDateTime != nil {
		payload["dueDateTime"] = r.DueDateTime.Graph()
	}
	if r.Importance != nil {
		payload["importance"] = *r.Importance
	}
	if r.Status != nil {
		payload["status"] = *r.Status
	}
	return payload
}

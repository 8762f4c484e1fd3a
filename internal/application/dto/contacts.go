package dto

// CreateContactRequest is the body of POST /api/contacts.
type CreateContactRequest struct {
	GivenName      string   `json:"givenName"`
	Surname        string   `json:"surname"`
	DisplayName    string   `json:"displayName"`
	EmailAddresses []string `json:"emailAddresses" validate:"omitempty,dive,email"`
	BusinessPhones []string `json:"businessPhones"`
	MobilePhone    string   `json:"mobilePhone"`
	CompanyName    string   `json:"companyName"`
	JobTitle       string   `json:"jobTitle"`
	PersonalNotes  string   `json:"personalNotes"`
}

// Validate requires at least a name or one way to reach the contact.
func (r *CreateContactRequest) Validate() ValidationErrors {
	if errs := Check(r); errs != nil {
		return errs
	}
	if r.GivenName == "" && r.Surname == "" && r.DisplayName == "" &&
		len(r.EmailAddresses) == 0 && len(r.BusinessPhones) == 0 && r.MobilePhone == "" {
		return Invalid("request", "at least one of givenName, surname, displayName, emailAddresses, businessPhones, or mobilePhone is required")
	}
	return nil
}

// Graph renders the contact payload.
func (r *CreateContactRequest) Graph() map[string]interface{} {
	payload := map[string]interface{}{}
	if r.GivenName != "" {
		payload["givenName"] = r.GivenName
	}
	if r.Surname != "" {
		payload["surname"] = r.Surname
	}
	if r.DisplayName != "" {
		payload["displayName"] = r.DisplayName
	}
	if len(r.EmailAddresses) > 0 {
		emails := make([]map[string]interface{}, 0, len(r.EmailAddresses))
		for _, addr := range r.EmailAddresses {
			emails = append(emails, map[string]interface{}{"address": addr, "name": addr})
		}
		payload["emailAddresses"] = emails
	}
	if len(r.BusinessPhones) > 0 {
		payload["businessPhones"] = r.BusinessPhones
	}
	if r.MobilePhone != "" {
		payload["mobilePhone"] = r.MobilePhone
	}
	if r.CompanyName != "" {
		payload["companyName"] = r.CompanyName
	}
	if r.JobTitle != "" {
		payload["jobTitle"] = r.JobTitle
	}
	if r.PersonalNotes != "" {
		payload["personalNotes"] = r.PersonalNotes
	}
	return payload
}

// UpdateContactRequest is the body of PATCH /api/contacts/:id. Same shape as
// create but nothing individually required.
type UpdateContactRequest CreateContactRequest

// Validate requires at least one field.
func (r *UpdateContactRequest) Validate() ValidationErrors {
	if errs := Check((*CreateContactRequest)(r)); errs != nil {
		return errs
	}
	payload := (*CreateContactRequest)(r).Graph()
	if len(payload) == 0 {
		return Invalid("request", "at least one field must be provided")
	}
	return nil
}

// Graph renders only the provided fields.
func (r *UpdateContactRequest) Graph() map[string]interface{} {
	return (*CreateContactRequest)(r).Graph()
}

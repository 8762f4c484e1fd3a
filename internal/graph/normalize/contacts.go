package normalize

// Contact flattens a Graph personal contact.
func Contact(e Entity) Entity {
	return Entity{
		"id":             str(e, "id"),
		"displayName":    str(e, "displayName"),
		"givenName":      str(e, "givenName"),
		"surname":        str(e, "surname"),
		"emailAddresses": contactEmails(list(e, "emailAddresses")),
		"businessPhones": stringList(list(e, "businessPhones")),
		"mobilePhone":    str(e, "mobilePhone"),
		"companyName":    str(e, "companyName"),
		"jobTitle":       str(e, "jobTitle"),
		"personalNotes":  str(e, "personalNotes"),
	}
}

func contactEmails(items []interface{}) []Entity {
	out := make([]Entity, 0, len(items))
	for _, item := range items {
		m, ok := item.(Entity)
		if !ok {
			continue
		}
		out = append(out, Entity{
			"name":    str(m, "name"),
			"address": str(m, "address"),
		})
	}
	return out
}

func stringList(items []interface{}) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Person flattens a Graph person (people search result).
func Person(e Entity) Entity {
	emails := list(e, "scoredEmailAddresses")
	address := ""
	if len(emails) > 0 {
		if m, ok := emails[0].(Entity); ok {
			address = str(m, "address")
		}
	}
	return Entity{
		"id":          str(e, "id"),
		"displayName": str(e, "displayName"),
		"email":       address,
		"jobTitle":    str(e, "jobTitle"),
		"department":  str(e, "department"),
		"officeLocation": str(e, "officeLocation"),
	}
}

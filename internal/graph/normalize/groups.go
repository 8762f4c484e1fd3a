package normalize

// Group flattens a Graph group.
func Group(e Entity) Entity {
	return Entity{
		"id":              str(e, "id"),
		"displayName":     str(e, "displayName"),
		"description":     str(e, "description"),
		"mail":            str(e, "mail"),
		"mailEnabled":     boolean(e, "mailEnabled"),
		"securityEnabled": boolean(e, "securityEnabled"),
		"visibility":      str(e, "visibility"),
		"groupTypes":      stringList(list(e, "groupTypes")),
	}
}

// GroupMember flattens a group member directory object.
func GroupMember(e Entity) Entity {
	return Entity{
		"id":          str(e, "id"),
		"displayName": str(e, "displayName"),
		"mail":        str(e, "mail"),
		"userPrincipalName": str(e, "userPrincipalName"),
		"type":        str(e, "@odata.type"),
	}
}

package normalize

// TaskList flattens a Graph to-do task list.
func TaskList(e Entity) Entity {
	return Entity{
		"id":          str(e, "id"),
		"displayName": str(e, "displayName"),
		"isOwner":     boolean(e, "isOwner"),
		"isShared":    boolean(e, "isShared"),
		"wellknownListName": str(e, "wellknownListName"),
	}
}

// Task flattens a Graph to-do task.
func Task(e Entity) Entity {
	return Entity{
		"id":              str(e, "id"),
		"title":           str(e, "title"),
		"status":          str(e, "status"),
		"importance":      str(e, "importance"),
		"body":            nestedStr(e, "body", "content"),
		"dueDateTime":     dateTimeZone(e, "dueDateTime"),
		"completedDateTime": dateTimeZone(e, "completedDateTime"),
		"createdDateTime": str(e, "createdDateTime"),
		"lastModifiedDateTime": str(e, "lastModifiedDateTime"),
		"isReminderOn":    boolean(e, "isReminderOn"),
	}
}

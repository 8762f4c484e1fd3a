package normalize

// Team flattens a joined team.
func Team(e Entity) Entity {
	return Entity{
		"id":          str(e, "id"),
		"displayName": str(e, "displayName"),
		"description": str(e, "description"),
		"isArchived":  boolean(e, "isArchived"),
	}
}

// Channel flattens a team channel.
func Channel(e Entity) Entity {
	return Entity{
		"id":             str(e, "id"),
		"displayName":    str(e, "displayName"),
		"description":    str(e, "description"),
		"membershipType": str(e, "membershipType"),
		"webUrl":         str(e, "webUrl"),
	}
}

// Chat flattens a Teams chat.
func Chat(e Entity) Entity {
	return Entity{
		"id":              str(e, "id"),
		"topic":           str(e, "topic"),
		"chatType":        str(e, "chatType"),
		"createdDateTime": str(e, "createdDateTime"),
		"lastUpdatedDateTime": str(e, "lastUpdatedDateTime"),
		"webUrl":          str(e, "webUrl"),
	}
}

// ChatMessage flattens a chat or channel message.
func ChatMessage(e Entity) Entity {
	return Entity{
		"id":              str(e, "id"),
		"messageType":     str(e, "messageType"),
		"createdDateTime": str(e, "createdDateTime"),
		"from":            chatMessageFrom(e),
		"body": Entity{
			"contentType": nestedStr(e, "body", "contentType"),
			"content":     nestedStr(e, "body", "content"),
		},
		"importance": str(e, "importance"),
		"webUrl":     str(e, "webUrl"),
	}
}

func chatMessageFrom(e Entity) Entity {
	user := nested(e, "from", "user")
	if user == nil {
		return nil
	}
	return Entity{
		"id":          str(user, "id"),
		"displayName": str(user, "displayName"),
	}
}

// OnlineMeeting flattens an online meeting.
func OnlineMeeting(e Entity) Entity {
	return Entity{
		"id":            str(e, "id"),
		"subject":       str(e, "subject"),
		"startDateTime": str(e, "startDateTime"),
		"endDateTime":   str(e, "endDateTime"),
		"joinUrl":       joinURL(e),
	}
}

func joinURL(e Entity) string {
	if u := str(e, "joinWebUrl"); u != "" {
		return u
	}
	return nestedStr(e, "joinInformation", "content")
}

// Transcript flattens a meeting transcript record.
func Transcript(e Entity) Entity {
	return Entity{
		"id":                   str(e, "id"),
		"meetingId":            str(e, "meetingId"),
		"createdDateTime":      str(e, "createdDateTime"),
		"transcriptContentUrl": str(e, "transcriptContentUrl"),
	}
}

// DriveItem flattens a file or folder in a channel's document library.
func DriveItem(e Entity) Entity {
	item := Entity{
		"id":                   str(e, "id"),
		"name":                 str(e, "name"),
		"size":                 number(e, "size"),
		"webUrl":               str(e, "webUrl"),
		"createdDateTime":      str(e, "createdDateTime"),
		"lastModifiedDateTime": str(e, "lastModifiedDateTime"),
		"isFolder":             nested(e, "folder") != nil,
		"downloadUrl":          str(e, "@microsoft.graph.downloadUrl"),
	}
	if f := nested(e, "file"); f != nil {
		item["mimeType"] = str(f, "mimeType")
	}
	if by := nested(e, "lastModifiedBy", "user"); by != nil {
		item["lastModifiedBy"] = str(by, "displayName")
	}
	return item
}

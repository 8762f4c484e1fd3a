package normalize

// Message flattens a Graph mail message.
func Message(e Entity) Entity {
	return Entity{
		"id":               str(e, "id"),
		"subject":          str(e, "subject"),
		"from":             emailAddress(nested(e, "from")),
		"toRecipients":     emailAddresses(list(e, "toRecipients")),
		"ccRecipients":     emailAddresses(list(e, "ccRecipients")),
		"receivedDateTime": str(e, "receivedDateTime"),
		"sentDateTime":     str(e, "sentDateTime"),
		"bodyPreview":      str(e, "bodyPreview"),
		"body":             messageBody(e),
		"isRead":           boolean(e, "isRead"),
		"hasAttachments":   boolean(e, "hasAttachments"),
		"importance":       str(e, "importance"),
		"webLink":          str(e, "webLink"),
		"conversationId":   str(e, "conversationId"),
	}
}

func messageBody(e Entity) Entity {
	body := nested(e, "body")
	if body == nil {
		return nil
	}
	return Entity{
		"contentType": str(body, "contentType"),
		"content":     str(body, "content"),
	}
}

// MailFolder flattens a Graph mail folder.
func MailFolder(e Entity) Entity {
	return Entity{
		"id":               str(e, "id"),
		"displayName":      str(e, "displayName"),
		"parentFolderId":   str(e, "parentFolderId"),
		"unreadItemCount":  number(e, "unreadItemCount"),
		"totalItemCount":   number(e, "totalItemCount"),
		"childFolderCount": number(e, "childFolderCount"),
	}
}

func number(e Entity, key string) float64 {
	if v, ok := e[key].(float64); ok {
		return v
	}
	return 0
}

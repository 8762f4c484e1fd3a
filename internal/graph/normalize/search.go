package normalize

// SearchHits flattens a unified search response into a flat hit list. The
// Graph response nests hits under value[].hitsContainers[].hits[].
func SearchHits(resp Entity) []Entity {
	out := make([]Entity, 0)
	if resp == nil {
		return out
	}
	for _, v := range list(resp, "value") {
		container, ok := v.(Entity)
		if !ok {
			continue
		}
		for _, hc := range list(container, "hitsContainers") {
			hits, ok := hc.(Entity)
			if !ok {
				continue
			}
			for _, h := range list(hits, "hits") {
				hit, ok := h.(Entity)
				if !ok {
					continue
				}
				out = append(out, searchHit(hit))
			}
		}
	}
	return out
}

func searchHit(hit Entity) Entity {
	resource := nested(hit, "resource")
	entry := Entity{
		"hitId":   str(hit, "hitId"),
		"rank":    number(hit, "rank"),
		"summary": str(hit, "summary"),
	}
	if resource != nil {
		entry["type"] = str(resource, "@odata.type")
		entry["id"] = str(resource, "id")
		entry["name"] = firstNonEmpty(
			str(resource, "subject"),
			str(resource, "name"),
			str(resource, "displayName"),
		)
		entry["webUrl"] = str(resource, "webUrl")
	}
	return entry
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

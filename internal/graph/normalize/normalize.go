// Package normalize flattens Microsoft Graph entities into the stable shapes
// the gateway documents. Normalizers are pure: renaming, field selection, and
// defaulting missing arrays to empty.
package normalize

// Entity is a raw Graph object.
type Entity = map[string]interface{}

// Normalizer maps one Graph entity to its stable shape.
type Normalizer func(Entity) Entity

// Collection extracts the "value" array of a Graph list response and applies
// the normalizer to each element. A missing or empty array normalizes to an
// empty slice, never nil.
func Collection(resp Entity, fn Normalizer) []Entity {
	out := make([]Entity, 0)
	if resp == nil {
		return out
	}
	items, ok := resp["value"].([]interface{})
	if !ok {
		return out
	}
	for _, item := range items {
		if m, ok := item.(Entity); ok {
			out = append(out, fn(m))
		}
	}
	return out
}

func str(e Entity, key string) string {
	if v, ok := e[key].(string); ok {
		return v
	}
	return ""
}

func boolean(e Entity, key string) bool {
	if v, ok := e[key].(bool); ok {
		return v
	}
	return false
}

func nested(e Entity, keys ...string) Entity {
	current := e
	for _, key := range keys {
		next, ok := current[key].(map[string]interface{})
		if !ok {
			return nil
		}
		current = next
	}
	return current
}

func nestedStr(e Entity, keys ...string) string {
	if len(keys) == 0 {
		return ""
	}
	parent := nested(e, keys[:len(keys)-1]...)
	if parent == nil {
		return ""
	}
	return str(parent, keys[len(keys)-1])
}

func list(e Entity, key string) []interface{} {
	if v, ok := e[key].([]interface{}); ok {
		return v
	}
	return []interface{}{}
}

// emailAddress flattens a Graph {emailAddress:{name,address}} wrapper.
func emailAddress(e Entity) Entity {
	return Entity{
		"name":    nestedStr(e, "emailAddress", "name"),
		"address": nestedStr(e, "emailAddress", "address"),
	}
}

func emailAddresses(items []interface{}) []Entity {
	out := make([]Entity, 0, len(items))
	for _, item := range items {
		if m, ok := item.(Entity); ok {
			out = append(out, emailAddress(m))
		}
	}
	return out
}

// dateTimeZone flattens a Graph {dateTime,timeZone} pair.
func dateTimeZone(e Entity, key string) Entity {
	inner := nested(e, key)
	if inner == nil {
		return nil
	}
	return Entity{
		"dateTime": str(inner, "dateTime"),
		"timeZone": str(inner, "timeZone"),
	}
}

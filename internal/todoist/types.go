package todoist

// Entity is a single record returned by the Todoist API: a project, task or
// label. The API owns the schema; this server only reads a handful of known
// keys and passes everything else through untouched, so the record is kept as
// a dynamic JSON object rather than a fixed struct.
type Entity map[string]any

// String returns the value of a string key, or "" if absent or not a string.
func (e Entity) String(key string) string {
	s, _ := e[key].(string)
	return s
}

// Int returns the value of a numeric key. JSON numbers decode as float64,
// so the value is converted; absent or non-numeric keys return 0.
func (e Entity) Int(key string) int {
	switch v := e[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// Bool returns the value of a boolean key, or false if absent or not a bool.
func (e Entity) Bool(key string) bool {
	b, _ := e[key].(bool)
	return b
}

// StringSlice returns the value of a key holding an array of strings.
// Non-string elements are skipped.
func (e Entity) StringSlice(key string) []string {
	raw, ok := e[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Object returns the value of a key holding a nested JSON object, such as a
// task's due sub-object. Returns nil if the key is absent or not an object.
func (e Entity) Object(key string) Entity {
	obj, ok := e[key].(map[string]any)
	if !ok {
		return nil
	}
	return Entity(obj)
}

// Due returns the task's due sub-object, or nil when the task has none.
func (e Entity) Due() Entity {
	return e.Object("due")
}

// entityFromAny converts a decoded JSON value into an Entity.
func entityFromAny(v any) (Entity, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &DecodeError{Err: errNotObject}
	}
	return Entity(obj), nil
}

// entitiesFromAny converts a decoded JSON value into a list of entities.
// A JSON null decodes to an empty list.
func entitiesFromAny(v any) ([]Entity, error) {
	if v == nil {
		return nil, nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, &DecodeError{Err: errNotArray}
	}
	out := make([]Entity, 0, len(raw))
	for _, item := range raw {
		e, err := entityFromAny(item)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

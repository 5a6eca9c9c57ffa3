package action

// MergeData returns a new map holding the state's entries overlaid with the
// payload's. A payload that is not a map leaves the state untouched.
func MergeData(state map[string]any, payload any) map[string]any {
	patch, ok := payload.(map[string]any)
	if !ok {
		return state
	}

	merged := make(map[string]any, len(state)+len(patch))
	for k, v := range state {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}

	return merged
}

// SetField returns a reducer that stores the payload under field
func SetField(field string) Reducer[map[string]any] {
	return func(state map[string]any, payload any) map[string]any {
		next := make(map[string]any, len(state)+1)
		for k, v := range state {
			next[k] = v
		}
		next[field] = payload

		return next
	}
}

package util

type Envelope map[string]any

func Error(message string) Envelope {
	return Envelope{"error": message}
}

func Data(key string, value any) Envelope {
	return Envelope{key: value}
}

// With adds key to the envelope and returns it, so error bodies can carry
// the resource they refer to.
func (e Envelope) With(key string, value any) Envelope {
	e[key] = value
	return e
}

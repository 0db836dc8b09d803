package event

import "encoding/json"

// DecodePayload returns the payload as T. In-process payloads are already T;
// anything else (e.g. a map read back from a dead-letter file) is converted
// through JSON.
func DecodePayload[T any](input interface{}) (T, error) {
	if v, ok := input.(T); ok {
		return v, nil
	}
	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	err = json.Unmarshal(data, &result)
	return result, err
}

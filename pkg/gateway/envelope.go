package gateway

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// emptyObject is what the unwrapper returns when a successful response has
// no usable JSON payload.
var emptyObject = json.RawMessage(`{}`)

// Unwrap returns the logical payload of a successful response.
//
// A 204, a non-JSON content type, or a body that does not parse as JSON all
// yield an empty object. When the body is a JSON object with a "data" key,
// the value of that key is returned; otherwise the whole body is. The body
// is consumed but not closed.
func Unwrap(resp *http.Response) (json.RawMessage, error) {
	if resp.StatusCode == http.StatusNoContent {
		return emptyObject, nil
	}
	if !isJSON(resp.Header.Get("Content-Type")) {
		return emptyObject, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return unwrapBody(body), nil
}

func unwrapBody(body []byte) json.RawMessage {
	if !json.Valid(body) {
		return emptyObject
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err == nil && obj != nil {
		if data, ok := obj["data"]; ok {
			return data
		}
	}

	return json.RawMessage(body)
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}

package dispatch

// Content types a handler may produce.
const (
	ContentTypeJSON = "application/json"
	ContentTypeText = "text/plain"
)

// Result is the envelope every dispatch terminates in: exactly one Ok or
// one Err. Body is always a finished serialized string, never a partial or
// streaming value; ContentType says how the caller must interpret it.
type Result struct {
	OK          bool   `json:"ok"`
	ContentType string `json:"contentType,omitempty"`
	Body        string `json:"body,omitempty"`
	Message     string `json:"message,omitempty"`
	Cause       string `json:"cause,omitempty"`
}

// OkJSON wraps an already-serialized JSON body in a success envelope.
func OkJSON(body string) Result {
	return Result{OK: true, ContentType: ContentTypeJSON, Body: body}
}

// OkText wraps a plain-text body in a success envelope.
func OkText(body string) Result {
	return Result{OK: true, ContentType: ContentTypeText, Body: body}
}

// Errf builds an error envelope from a message and an optional cause chain.
func Errf(message string, cause error) Result {
	r := Result{Message: message}
	if cause != nil {
		r.Cause = cause.Error()
	}
	return r
}

package response

// StatusCode is a 3-digit HTTP response status.
type StatusCode int

const (
	StatusOK                  StatusCode = 200
	StatusCreated             StatusCode = 201
	StatusNoContent           StatusCode = 204
	StatusMovedPermanently    StatusCode = 301
	StatusFound               StatusCode = 302
	StatusBadRequest          StatusCode = 400
	StatusNotFound            StatusCode = 404
	StatusMethodNotAllowed    StatusCode = 405
	StatusLengthRequired      StatusCode = 411
	StatusPayloadTooLarge     StatusCode = 413
	StatusURITooLong          StatusCode = 414
	StatusTooManyRequests     StatusCode = 429
	StatusInternalServerError StatusCode = 500
)

var statusText = map[StatusCode]string{
	StatusOK:                  "OK",
	StatusCreated:             "Created",
	StatusNoContent:           "No Content",
	StatusMovedPermanently:    "Moved Permanently",
	StatusFound:               "Found",
	StatusBadRequest:          "Bad Request",
	StatusNotFound:            "Not Found",
	StatusMethodNotAllowed:    "Method Not Allowed",
	StatusLengthRequired:      "Length Required",
	StatusPayloadTooLarge:     "Payload Too Large",
	StatusURITooLong:          "URI Too Long",
	StatusTooManyRequests:     "Too Many Requests",
	StatusInternalServerError: "Internal Server Error",
}

// Text returns the reason phrase for code, or "Unknown" for codes this
// library does not name.
func (c StatusCode) Text() string {
	if text, ok := statusText[c]; ok {
		return text
	}
	return "Unknown"
}

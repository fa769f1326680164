package models

// Response is the envelope for browser-facing JSON endpoints other than
// checkout and webhooks, whose shapes are fixed by the Stripe flow.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Field   string      `json:"field,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(data interface{}, message string) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(err string) Response {
	return Response{
		Success: false,
		Error:   err,
	}
}

// ValidationErrorResponse names the offending form field so the page can
// highlight it inline.
func ValidationErrorResponse(field, err string) Response {
	return Response{
		Success: false,
		Error:   err,
		Field:   field,
	}
}

package model

import "net/http"

const (
	RelayResponseBody     = "Approval notification processed"
	ForwarderResponseBody = "Notifications forwarded"
)

// Response is the fixed acknowledgment returned to the dispatcher.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

func OK(body string) Response {
	return Response{StatusCode: http.StatusOK, Body: body}
}

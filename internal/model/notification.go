package model

import "fmt"

// DefaultSubject is used when a delivery record carries no subject.
const DefaultSubject = "SNS Alert"

// Notification is a message bound for the notification topic.
// It is also the JSON value carried on the kafka sink.
type Notification struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Delivery is a single record of a forwarder batch.
type Delivery struct {
	Subject string
	Message string
}

// SubjectOrDefault returns the subject, or DefaultSubject when empty.
func (d Delivery) SubjectOrDefault() string {
	if d.Subject == "" {
		return DefaultSubject
	}
	return d.Subject
}

// ChatPayload is the JSON body posted to the chat webhook.
type ChatPayload struct {
	Text string `json:"text"`
}

// NewChatPayload bolds the subject and puts the message on the next line.
func NewChatPayload(subject, message string) ChatPayload {
	return ChatPayload{Text: fmt.Sprintf("*%s*\n%s", subject, message)}
}

package domain

import "time"

const NotificationRequestSubmitted = "planning_request_submitted"

type NotificationMessage struct {
	Type string   `json:"type"`
	To   []string `json:"to"`
	Data any      `json:"data"`
}

type RequestSubmittedData struct {
	RequestID   int64     `json:"requestID"`
	SubmittedBy string    `json:"submittedBy"`
	SubmittedAt time.Time `json:"submittedAt"`
	ItemCount   int       `json:"itemCount"`
}

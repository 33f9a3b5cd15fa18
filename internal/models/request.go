package models

import "time"

// ItemRequest is a "looking for" post; items may be published in answer to it.
type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequestorID int64     `json:"requestorId"`
	Created     time.Time `json:"created"`
}

// ItemRequestDetails attaches the items published in answer to the request.
type ItemRequestDetails struct {
	ItemRequest
	Items []Item `json:"items"`
}

package dto

// UnreadCountResponse is the object form of the unread counter endpoint.
type UnreadCountResponse struct {
	Count int `json:"count"`
}

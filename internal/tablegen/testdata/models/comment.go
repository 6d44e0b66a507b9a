package models

//surrealkit:table
type Comment struct {
	*Timestamps
	Body string `json:"body"`
}

package models

import "time"

// Person is a user of the system.
//
//surrealkit:table name=person
type Person struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	internal  string
}

//surrealkit:table
type BlogPost struct {
	Audit `json:"audit"`
	ID    string
	Title string `json:"title"`
}

// Audit is embedded, not a table.
type Audit struct {
	By string `json:"by"`
}

//surrealkit:tables name=ignored
type NotATable struct {
	X int
}

// Timestamps is embedded without a tag, so its fields are stored inline.
type Timestamps struct {
	CreatedBy string `json:"created_by"`
	UpdatedBy string `json:"updated_by,omitempty"`
}

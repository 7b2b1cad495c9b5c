package domain

import "time"

// Employer identifies the user who posted a job. Name is only populated
// when the job was read through a listing that resolves it.
type Employer struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Job is a posting created by an employer. Bids holds the ids of users who
// bid on the job; nothing writes to it yet.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Employer    Employer  `json:"employer"`
	Bids        []string  `json:"bids"`
	CreatedAt   time.Time `json:"created_at"`
}

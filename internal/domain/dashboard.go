package domain

import "time"

type StatusCounts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Accepted int `json:"accepted"`
	Denied   int `json:"denied"`
}

// Dashboard is the read-side summary over one owner's collections.
type Dashboard struct {
	Counts             StatusCounts  `json:"counts"`
	ResponseRate       int           `json:"responseRate"`
	RecentApplications []Application `json:"recentApplications"`
	FollowUpContacts   []Contact     `json:"followUpContacts"`
	GeneratedAt        time.Time     `json:"generatedAt"`
}

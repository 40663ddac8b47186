package model

import "time"

// DailyMessageCount is one point of the messaging activity chart.
type DailyMessageCount struct {
	Day      time.Time `json:"day"`
	Sent     int       `json:"sent"`
	Received int       `json:"received"`
}

// StatusCount is one bar of the signature request status chart.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

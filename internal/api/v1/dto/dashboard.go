package dto

type DailyMessageCountDTO struct {
	Day      string `json:"day"`
	Sent     int    `json:"sent"`
	Received int    `json:"received"`
}

type StatusCountDTO struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type DashboardStatsResponseDTO struct {
	Days              int                    `json:"days"`
	Messages          []DailyMessageCountDTO `json:"messages"`
	SignatureRequests []StatusCountDTO       `json:"signature_requests"`
}

package dashboard

import (
	domainEvent "vms-backend/internal/domain/event"
	eventUC "vms-backend/internal/usecase/event"
)

type Counts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

type EventCounts struct {
	Total    int            `json:"total"`
	Internal int            `json:"internal"`
	External int            `json:"external"`
	Public   int            `json:"public"`
	Upcoming int            `json:"upcoming"`
	ByStatus map[string]int `json:"byStatus"`
}

type Summary struct {
	Members       Counts         `json:"members"`
	ActiveMembers int            `json:"activeMembers"`
	Accounts      map[string]int `json:"accounts"`
	Events        EventCounts    `json:"events"`
	Requirements  Counts         `json:"requirements"`
	Evaluations   int            `json:"evaluations"`
}

type MonthCount struct {
	Month        int `json:"month"`
	Internal     int `json:"internal"`
	External     int `json:"external"`
	Requirements int `json:"requirements"`
}

type Monthly struct {
	Year      int            `json:"year"`
	Months    []MonthCount   `json:"months"`
	ByCollege map[string]int `json:"membersByCollege"`
}

type EventDetail struct {
	Event    *domainEvent.Event `json:"event"`
	Analysis *eventUC.Analysis  `json:"analysis"`
}

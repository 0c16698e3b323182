package models

// StatusCounts su brojači po status grupama koje dashboard prikazuje.
type StatusCounts struct {
	Total           int `json:"total"`
	Completed       int `json:"completed"`       // completed + posted + approved
	InProgress      int `json:"inProgress"`      // in-progress + assigned
	PendingApproval int `json:"pendingApproval"` // pending-client-approval
}

type ClientRollup struct {
	ClientID   string `json:"clientId"`
	ClientName string `json:"clientName"`
	StatusCounts
}

type EmployeeRollup struct {
	EmployeeName string `json:"employeeName"`
	StatusCounts
}

// TrendPoint je jedan dan u sedmodnevnoj seriji.
type TrendPoint struct {
	Date       string `json:"date"` // YYYY-MM-DD
	Dispatched int    `json:"dispatched"`
	Completed  int    `json:"completed"`
}

type Report struct {
	StatusCounts
	CompletionRate int              `json:"completionRate"` // procenat, zaokružen
	Clients        []ClientRollup   `json:"clients"`
	Employees      []EmployeeRollup `json:"employees"`
	Trend          []TrendPoint     `json:"trend"`
}

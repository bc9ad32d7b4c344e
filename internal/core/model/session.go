package model

// Session is one completed pomodoro work interval. Date is an ISO
// calendar date (YYYY-MM-DD). TaskID is a weak reference to the task
// the minutes were attributed to; it may be empty and may dangle if
// the task is later deleted.
type Session struct {
	Date    string `json:"date"`
	Minutes int    `json:"minutes"`
	TaskID  string `json:"taskId,omitempty"`
}

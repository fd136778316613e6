package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type SessionBookedMailData struct {
	MonitorName  string `json:"monitorName"`
	ActivityName string `json:"activityName"`
	Date         string `json:"date"`
	ShiftName    string `json:"shiftName"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
}

type SessionCancelledMailData struct {
	MonitorName  string `json:"monitorName"`
	ActivityName string `json:"activityName"`
	Date         string `json:"date"`
	ShiftName    string `json:"shiftName"`
}

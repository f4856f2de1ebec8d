package dtos

type ApplicationRequest struct {
	JobID     uint   `json:"job_id" form:"job_id" binding:"required"`
	ResumeURL string `json:"resume_url" form:"resume_url"`
}

type StatusUpdateRequest struct {
	Status   string `json:"status" form:"status" binding:"required"`
	NextStep string `json:"next_step" form:"next_step"`
}

// EmployerApplicationFilter drives the dashboard "Applications" tab.
type EmployerApplicationFilter struct {
	Job    string `form:"job"`
	Status string `form:"status"`
	Date   string `form:"date"`
}

const (
	AllJobs     = "All Jobs"
	AllStatuses = "All Statuses"
	AllTime     = "All Time"
	Today       = "Today"
	ThisWeek    = "This Week"
	ThisMonth   = "This Month"
)

var (
	EmployerStatusOptions = []string{AllStatuses, "New", "Reviewed", "Interview", "Rejected", "Hired"}
	DateOptions           = []string{AllTime, Today, ThisWeek, ThisMonth}
)

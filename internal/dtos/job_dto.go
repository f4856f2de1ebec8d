package dtos

type JobExtractionRequest struct {
	RawHTML string `json:"raw_html" binding:"required"`
	URL     string `json:"url"`
}

type JobCreationRequest struct {
	Title       string `json:"title" form:"title" binding:"required"`
	Description string `json:"description" form:"description" binding:"required"`

	// Optional Fields
	CompanyName     string `json:"company_name" form:"company_name"`
	Location        string `json:"location" form:"location"`
	Region          string `json:"region" form:"region"`
	JobType         string `json:"job_type" form:"job_type" binding:"omitempty,oneof='Full-time' 'Part-time' 'Contract' 'Internship'"`
	ExperienceLevel string `json:"experience_level" form:"experience_level" binding:"omitempty,oneof='Entry Level' 'Mid Level' 'Senior' 'Executive'"`
	SalaryRange     string `json:"salary_range" form:"salary_range"`
	Featured        bool   `json:"featured" form:"featured"`
}

// JobUpdateRequest carries the fields an employer may change. Nil fields
// are left alone.
type JobUpdateRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	Location        *string `json:"location"`
	Region          *string `json:"region"`
	JobType         *string `json:"job_type"`
	ExperienceLevel *string `json:"experience_level"`
	SalaryRange     *string `json:"salary_range"`
	Status          *string `json:"status" binding:"omitempty,oneof=Active Closed Filled"`
}

// ExtractedJob is the shape the extraction prompt asks the model for.
type ExtractedJob struct {
	CompanyName string   `json:"company_name"`
	Title       string   `json:"role_title"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	TechStack   []string `json:"tech_stack"`
	SalaryRange *string  `json:"salary_range"`
}

package dtos

type SignInRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

type SignUpRequest struct {
	Email     string `form:"email" json:"email"`
	Password  string `form:"password" json:"password"`
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
	Role      string `form:"role" json:"role"`
}

type ProfileUpdateRequest struct {
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
	Phone     string `form:"phone" json:"phone"`
	City      string `form:"city" json:"city"`
	Country   string `form:"country" json:"country"`
	Website   string `form:"website" json:"website" binding:"omitempty,url"`
	About     string `form:"about" json:"about"`
	Headline  string `form:"headline" json:"headline"`
	Skills    string `form:"skills" json:"skills"`
}

type PreferencesRequest struct {
	JobTitles         []string `form:"job_titles" json:"job_titles"`
	JobTypes          []string `form:"job_types" json:"job_types"`
	Locations         []string `form:"locations" json:"locations"`
	SalaryExpectation string   `form:"salary_expectation" json:"salary_expectation"`
	Relocation        bool     `form:"relocation" json:"relocation"`
	Travel            bool     `form:"travel" json:"travel"`
	Notes             string   `form:"notes" json:"notes"`
}

type SettingsRequest struct {
	JobRecommendations bool `form:"job_recommendations" json:"job_recommendations"`
	ApplicationUpdates bool `form:"application_updates" json:"application_updates"`
	ProfileViews       bool `form:"profile_views" json:"profile_views"`
	JobAlerts          bool `form:"job_alerts" json:"job_alerts"`
	VisibleToEmployers bool `form:"visible_to_employers" json:"visible_to_employers"`
	AllowContact       bool `form:"allow_contact" json:"allow_contact"`
	ShowSalary         bool `form:"show_salary" json:"show_salary"`
}

type CompanyRequest struct {
	Name        string  `form:"name" json:"name" binding:"required"`
	Industry    string  `form:"industry" json:"industry"`
	Size        string  `form:"size" json:"size"`
	Location    string  `form:"location" json:"location"`
	Website     string  `form:"website" json:"website" binding:"omitempty,url"`
	FoundedYear int     `form:"founded_year" json:"founded_year" binding:"omitempty,min=1900,max=2100"`
	Description string  `form:"description" json:"description"`
	Rating      float64 `form:"rating" json:"rating" binding:"omitempty,min=0,max=5"`
}

var (
	PreferenceTitleOptions    = []string{"Software Developer", "Frontend Developer", "Backend Developer", "Full Stack Developer", "DevOps Engineer", "Data Scientist"}
	PreferenceTypeOptions     = []string{"Full-time", "Part-time", "Contract", "Freelance", "Internship"}
	PreferenceLocationOptions = []string{"Remote", "United States", "Europe", "Asia", "Australia"}
	SalaryExpectationOptions  = []string{"$40K - $60K", "$60K - $80K", "$80K - $100K", "$100K - $120K", "$120K - $150K", "$150K+"}
	CountryOptions            = []string{"United States", "Canada", "United Kingdom", "Germany", "Australia"}
)

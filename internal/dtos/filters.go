package dtos

// Select options shown by the search forms. The first entry of each list is
// the "no filter" value.
var (
	LocationOptions   = []string{AnyLocation, "Remote", "USA", "Europe", "Asia", "Other"}
	JobTypeOptions    = []string{AnyType, "Full-time", "Part-time", "Contract", "Internship"}
	ExperienceOptions = []string{AnyLevel, "Entry Level", "Mid Level", "Senior", "Executive"}
	SalaryOptions     = []string{AnyRange, SalaryUnder50K, Salary50To100K, Salary100To150K, SalaryOver150K}
	JobSortOptions    = []string{SortNewest, SortSalary, SortRelevance, SortCompanyRating}

	IndustryOptions    = []string{AllIndustries, "Technology", "Healthcare", "Finance", "Education", "Retail", "Design", "Energy"}
	CompanySizeOptions = []string{AnySize, "Startup (1-50)", "Small (51-200)", "Medium (201-1000)", "Large (1000+)"}
	CompanySortOptions = []string{SortRating, SortMostJobs, SortNewestCompany, SortAlphabetical}
)

const (
	AnyLocation   = "Any Location"
	AnyType       = "Any Type"
	AnyLevel      = "Any Level"
	AnyRange      = "Any Range"
	AllIndustries = "All Industries"
	AnySize       = "Any Size"

	SalaryUnder50K  = "Under $50K"
	Salary50To100K  = "$50K - $100K"
	Salary100To150K = "$100K - $150K"
	SalaryOver150K  = "Over $150K"

	SortNewest        = "Newest First"
	SortSalary        = "Salary: High to Low"
	SortRelevance     = "Relevance"
	SortCompanyRating = "Company Rating"

	SortRating        = "Rating"
	SortMostJobs      = "Most Jobs"
	SortNewestCompany = "Newest"
	SortAlphabetical  = "Alphabetical"
)

// SalaryBand is the numeric window a salary option selects. A zero bound is
// open.
type SalaryBand struct {
	MinAtLeast int
	MaxBelow   int
}

var salaryBands = map[string]SalaryBand{
	SalaryUnder50K:  {MaxBelow: 50000},
	Salary50To100K:  {MinAtLeast: 50000, MaxBelow: 100000},
	Salary100To150K: {MinAtLeast: 100000, MaxBelow: 150000},
	SalaryOver150K:  {MinAtLeast: 150000},
}

// JobFilter is bound from the jobs search form or the API query string.
type JobFilter struct {
	Search     string `form:"search" json:"search"`
	Location   string `form:"location" json:"location"`
	JobType    string `form:"job_type" json:"job_type"`
	Experience string `form:"experience" json:"experience"`
	Salary     string `form:"salary" json:"salary"`
	Sort       string `form:"sort" json:"sort"`
}

// Region returns the region to match, or "" when the location is unset.
func (f JobFilter) Region() string {
	return chosen(f.Location, AnyLocation)
}

func (f JobFilter) Type() string {
	return chosen(f.JobType, AnyType)
}

func (f JobFilter) Level() string {
	return chosen(f.Experience, AnyLevel)
}

// SalaryBand reports the band for the selected salary option. Unknown
// options select nothing.
func (f JobFilter) SalaryBand() (SalaryBand, bool) {
	band, ok := salaryBands[f.Salary]
	return band, ok
}

// CompanyFilter is bound from the companies search form.
type CompanyFilter struct {
	Search   string `form:"search" json:"search"`
	Industry string `form:"industry" json:"industry"`
	Size     string `form:"size" json:"size"`
	Sort     string `form:"sort" json:"sort"`
}

func (f CompanyFilter) IndustryValue() string {
	return chosen(f.Industry, AllIndustries)
}

func (f CompanyFilter) SizeValue() string {
	return chosen(f.Size, AnySize)
}

func chosen(value, unset string) string {
	if value == unset {
		return ""
	}
	return value
}

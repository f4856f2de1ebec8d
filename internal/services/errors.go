package services

import "errors"

var (
	ErrForbidden          = errors.New("you are not allowed to do that")
	ErrInvalidStatus      = errors.New("unknown application status")
	ErrUnsupportedResume  = errors.New("resume must be a PDF or DOCX file")
	ErrExtractionDisabled = errors.New("job extraction is disabled: no Gemini API key configured")
	ErrAlreadyApplied     = errors.New("you have already applied to this job")
	ErrJobNotOpen         = errors.New("this job is no longer accepting applications")
	ErrConfirmDelete      = errors.New(`type "DELETE" to confirm`)
	ErrCompanyRequired    = errors.New("company name is required")
	ErrResumeTooLarge     = errors.New("resume file is too large")
)

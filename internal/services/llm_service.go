package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/justsurfingit/jobwave/internal/dtos"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"
)

const maxExtractionInput = 20000

const jobExtractionPrompt = `
You are an expert Job Data Extraction Agent. Your task is to analyze the provided raw HTML/Text from a job posting and extract structured data.

### INSTRUCTIONS:
1. **Analyze** the text to identify the core job details.
2. **Ignore** navigation menus, footers, "similar jobs" lists, and site advertisements.
3. **Extract** the following fields strictly.
4. **Format** the output as valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{
    "company_name": "Name of the company (e.g., Google, StartupInc)",
    "role_title": "Job title (e.g., Senior Backend Engineer)",
    "location": "Job location or 'Remote'",
    "description": "A clean summary of the job in Markdown. Focus on Responsibilities and Requirements. Remove HTML tags.",
    "tech_stack": ["Array", "of", "technologies", "mentioned", "e.g., Go, React, AWS"],
    "salary_range": "The salary string if explicitly mentioned (e.g., '$100k - $150k'), otherwise null"
}

### CONSTRAINT:
If a piece of information is missing, set the value to null. Do not hallucinate or guess.

### RAW CONTENT:
%s
`

// LLMService extracts job postings from raw pages. A nil Client means the
// feature is disabled.
type LLMService struct {
	Client llms.Model
	log    *zap.Logger
}

// NewLLMService connects to Gemini. Without an API key it returns a
// disabled service instead of failing.
func NewLLMService(ctx context.Context, apiKey, model string, log *zap.Logger) (*LLMService, error) {
	if apiKey == "" {
		log.Warn("⚠️ GEMINI_API_KEY is empty, job extraction disabled")
		return &LLMService{log: log}, nil
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	log.Info("✅ Gemini client ready", zap.String("model", model))
	return &LLMService{Client: llm, log: log}, nil
}

func (s *LLMService) Enabled() bool { return s.Client != nil }

// ExtractJobDetails asks the model for the posting found in rawHTML.
func (s *LLMService) ExtractJobDetails(ctx context.Context, rawHTML string) (*dtos.ExtractedJob, error) {
	if !s.Enabled() {
		return nil, ErrExtractionDisabled
	}
	prompt := fmt.Sprintf(jobExtractionPrompt, truncateUTF8(rawHTML, maxExtractionInput))
	var resp string
	err := retry(ctx, s.log, 3, time.Second, func() error {
		var err error
		resp, err = llms.GenerateFromSinglePrompt(ctx, s.Client, prompt, llms.WithTemperature(0))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("extracting job details: %w", err)
	}
	return parseExtraction(resp)
}

// truncateUTF8 cuts s to at most n bytes without splitting a character.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// parseExtraction decodes the model's answer, tolerating a markdown code
// fence around the JSON.
func parseExtraction(resp string) (*dtos.ExtractedJob, error) {
	cleaned := strings.TrimSpace(resp)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var job dtos.ExtractedJob
	if err := json.Unmarshal([]byte(cleaned), &job); err != nil {
		return nil, fmt.Errorf("decoding model output: %w", err)
	}
	return &job, nil
}

// retry executes a function with exponential backoff.
func retry(ctx context.Context, log *zap.Logger, attempts int, sleep time.Duration, f func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = f(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		log.Warn("⚠️ API Error, retrying", zap.Error(err), zap.Duration("backoff", sleep))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}
		sleep *= 2
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, err)
}

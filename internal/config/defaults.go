package config

const (
	defaultBaseDir             = "docs"
	defaultKeywordCount        = 5
	defaultSummaryLength       = 200
	defaultLanguage            = "en"
	defaultLLMBaseURL          = "https://api.openai.com/v1"
	defaultLLMTimeoutSeconds   = 30
	defaultMaxWorkers          = 10
	defaultFetchTimeoutSeconds = 10
	defaultSchedule            = "@hourly"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Output: Output{
			BaseDir: defaultBaseDir,
		},
		Summary: Summary{
			KeywordCount:  defaultKeywordCount,
			SummaryLength: defaultSummaryLength,
			Language:      defaultLanguage,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Workflow: Workflow{
			MaxWorkers:          defaultMaxWorkers,
			FetchTimeoutSeconds: defaultFetchTimeoutSeconds,
			Schedule:            defaultSchedule,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Journal: Journal{
			Enabled: true,
		},
	}
}

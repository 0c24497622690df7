package domain

// Configuration keys used by the file config store.
const (
	// SettingAuditEndpoint is the audit engine endpoint URL.
	SettingAuditEndpoint = "audit.endpoint"

	// SettingAuditTimeout is the audit request timeout in seconds.
	SettingAuditTimeout = "audit.timeout"

	// SettingLLMProvider selects the fix-suggestion provider.
	SettingLLMProvider = "llm.provider"

	// SettingLLMModel overrides the provider's default model.
	SettingLLMModel = "llm.model"

	// SettingLLMAPIKey is the provider API key.
	SettingLLMAPIKey = "llm.api_key"

	// SettingGitHubToken is the personal access token used to file issues.
	SettingGitHubToken = "github.token"

	// SettingGitHubRepo is the "owner/repo" issues are filed against.
	SettingGitHubRepo = "github.repo"

	// SettingSchedulerEnabled is the master switch for recurring audits.
	SettingSchedulerEnabled = "scheduler.enabled"

	// SettingSchedulerInterval is the recurring audit interval in hours.
	SettingSchedulerInterval = "scheduler.interval_hours"
)

// AIProvider identifies an AI service provider for fix suggestions.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

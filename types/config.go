package types

// AppConfig represents the complete application configuration.
type AppConfig struct {
	Verbose   bool            `mapstructure:"verbose"`
	Config    string          `mapstructure:"config"`
	Project   ProjectConfig   `mapstructure:"project" validate:"required"`
	Data      DataConfig      `mapstructure:"data" validate:"required"`
	LLM       LLMConfig       `mapstructure:"llm" validate:"omitempty"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ProjectConfig holds workspace-related settings.
type ProjectConfig struct {
	RootDir      string `mapstructure:"rootDir" validate:"required"`
	TemplatesDir string `mapstructure:"templatesDir" validate:"required"`
	DraftFile    string `mapstructure:"draftFile" validate:"required"`
}

// DataConfig holds project-store configuration.
type DataConfig struct {
	File   string `mapstructure:"file" validate:"required"`
	Format string `mapstructure:"format" validate:"required,oneof=json yaml toml"`
}

// LLMConfig holds configuration for the plan-generation and chat providers.
type LLMConfig struct {
	Provider      string `mapstructure:"provider" validate:"omitempty,oneof=gemini openai anthropic ollama"`
	ModelName     string `mapstructure:"modelName" validate:"omitempty,min=1"`
	ChatModelName string `mapstructure:"chatModelName" validate:"omitempty,min=1"`
	APIKey        string `mapstructure:"apiKey" validate:"omitempty,min=1"`
	// BaseURL is only used by the ollama provider.
	BaseURL string `mapstructure:"baseUrl" validate:"omitempty,url"`
	// ThinkingBudget caps reasoning tokens for providers that support it.
	ThinkingBudget int32   `mapstructure:"thinkingBudget" validate:"omitempty,min=0"`
	Temperature    float64 `mapstructure:"temperature" validate:"omitempty,min=0,max=2"`
	// RequestTimeoutSeconds bounds every provider call. Generation has no
	// upstream timeout of its own, so one is always imposed here.
	RequestTimeoutSeconds int  `mapstructure:"requestTimeoutSeconds" validate:"omitempty,min=5,max=600"`
	Debug                 bool `mapstructure:"debug"`
}

// TelemetryConfig holds opt-in anonymous usage analytics settings.
type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	APIKey   string `mapstructure:"apiKey"`
	Endpoint string `mapstructure:"endpoint"`
}

package driven

// SettingsStore provides access to application settings.
// Implementations handle persistence (e.g. TOML files) and type conversion.
type SettingsStore interface {
	// Get retrieves a settings value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string settings value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt retrieves an integer settings value.
	// Returns 0 if key doesn't exist or isn't an integer.
	GetInt(key string) int

	// Set stores a settings value. The value is persisted immediately.
	Set(key string, value any) error

	// Load reads settings from storage.
	Load() error

	// Path returns the settings file path.
	Path() string
}

// Settings keys used by the engine.
const (
	// SettingExtractionURL is the base URL of the text-extraction service.
	SettingExtractionURL = "extraction_url"

	// SettingWorkflowURL is the base URL of the workflow runtime's signal
	// endpoint.
	SettingWorkflowURL = "workflow_url"

	// SettingDataDir overrides the default data directory.
	SettingDataDir = "data_dir"

	// SettingMaxDocumentLen overrides the default per-document ceiling.
	SettingMaxDocumentLen = "max_document_len"

	// SettingProviderName is the provider label embedded in table
	// descriptions.
	SettingProviderName = "provider_name"
)

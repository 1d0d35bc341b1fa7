package domain

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CrawlMode controls how far a crawl session follows links from the
// configured root URL.
type CrawlMode string

const (
	// ModeChildPages restricts the crawl to pages under the root URL's path.
	ModeChildPages CrawlMode = "child"

	// ModeWholeWebsite crawls the entire website of the root URL.
	ModeWholeWebsite CrawlMode = "website"
)

// CrawlFrequency controls how often the workflow runtime re-runs a crawl.
type CrawlFrequency string

const (
	// FrequencyNever disables scheduled re-crawls.
	FrequencyNever CrawlFrequency = "never"

	// FrequencyDaily re-crawls once a day.
	FrequencyDaily CrawlFrequency = "daily"

	// FrequencyWeekly re-crawls once a week.
	FrequencyWeekly CrawlFrequency = "weekly"

	// FrequencyMonthly re-crawls once a month.
	FrequencyMonthly CrawlFrequency = "monthly"
)

// DepthOptions enumerates the accepted crawl depths. Depth is bounded to
// keep a single session's page count predictable.
var DepthOptions = []int{0, 1, 2, 3, 4, 5}

// IsDepthOption reports whether d is a member of DepthOptions.
func IsDepthOption(d int) bool {
	for _, opt := range DepthOptions {
		if d == opt {
			return true
		}
	}
	return false
}

// Default bounds applied by WithDefaults when a field is unset.
const (
	// DefaultMaxPages bounds how many pages one session may ingest.
	DefaultMaxPages = 512

	// MaxPagesCeiling is the hard upper bound on MaxPages.
	MaxPagesCeiling = 8192

	// DefaultMaxDocumentLen is the per-document ingestion ceiling in bytes
	// of normalised text. The content pipeline skips raw buffers larger
	// than four times this value.
	DefaultMaxDocumentLen = 500_000
)

// CrawlConfiguration holds the persisted settings of one connector's crawl
// sessions. A connector has exactly one configuration at a time; updating
// it restarts the session.
type CrawlConfiguration struct {
	// ConnectorID identifies the owning connector.
	ConnectorID string

	// ID is the unique identifier of this configuration revision.
	ID string

	// URL is the crawl root.
	URL string

	// MaxPages bounds how many pages one crawl session may ingest.
	MaxPages int

	// Depth bounds link-following distance from the root.
	// Must be a member of DepthOptions.
	Depth int

	// Mode controls the crawl boundary.
	Mode CrawlMode

	// Frequency controls scheduled re-crawls.
	Frequency CrawlFrequency

	// MaxDocumentLen is the per-document ingestion ceiling in bytes.
	MaxDocumentLen int

	// LastCrawledAt is when the last crawl pass completed, nil before the
	// first pass.
	LastCrawledAt *time.Time

	// CreatedAt is when the configuration was first persisted.
	CreatedAt time.Time

	// UpdatedAt is when the configuration was last changed.
	UpdatedAt time.Time
}

// WithDefaults returns a copy with unset fields replaced by defaults.
func (c CrawlConfiguration) WithDefaults() CrawlConfiguration {
	if c.MaxPages == 0 {
		c.MaxPages = DefaultMaxPages
	}
	if c.MaxDocumentLen == 0 {
		c.MaxDocumentLen = DefaultMaxDocumentLen
	}
	if c.Mode == "" {
		c.Mode = ModeChildPages
	}
	if c.Frequency == "" {
		c.Frequency = FrequencyNever
	}
	return c
}

// Validate checks the configuration against the accepted option sets.
// Failures wrap ErrInvalidConfiguration.
func (c CrawlConfiguration) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.URL, validation.Required, is.URL),
		validation.Field(&c.Depth, validation.By(validateDepth)),
		validation.Field(&c.MaxPages, validation.Required, validation.Min(1), validation.Max(MaxPagesCeiling)),
		validation.Field(&c.MaxDocumentLen, validation.Required, validation.Min(1)),
		validation.Field(&c.Mode, validation.Required, validation.In(ModeChildPages, ModeWholeWebsite)),
		validation.Field(&c.Frequency, validation.Required,
			validation.In(FrequencyNever, FrequencyDaily, FrequencyWeekly, FrequencyMonthly)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	return nil
}

// validateDepth enforces membership of DepthOptions.
func validateDepth(value any) error {
	d, ok := value.(int)
	if !ok || !IsDepthOption(d) {
		return fmt.Errorf("must be one of %v", DepthOptions)
	}
	return nil
}

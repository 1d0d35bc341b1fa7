package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/custodia-labs/crawlsync/internal/core/domain"
	"github.com/custodia-labs/crawlsync/internal/core/ports/driven"
	"github.com/custodia-labs/crawlsync/internal/ingestion/htmltext"
	"github.com/custodia-labs/crawlsync/internal/logger"
)

// oversizeMultiplier scales the per-document ceiling for the raw-byte
// guard. Extracted text from binary formats can expand, so the guard runs
// against a multiple of the ceiling before any extraction work starts.
const oversizeMultiplier = 4

// tableNameMaxInput caps how many characters of the file name feed the
// table name slug.
const tableNameMaxInput = 32

// pagePrefixTemplates maps media types to the label used in per-page
// section prefixes. Media types without an entry produce nil prefixes.
var pagePrefixTemplates = map[string]string{
	"application/pdf": "$pdfPage",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": "$slideNumber",
}

// tabularMediaTypes are parsed into tables instead of document text.
var tabularMediaTypes = map[string]struct{}{
	"text/csv":        {},
	"application/csv": {},
}

// mediaClass is the dispatch variant for one declared media type.
// Adding a media type means adding one class membership and one handler,
// not a new implementation of the pipeline.
type mediaClass int

const (
	mediaTabular mediaClass = iota
	mediaHTML
	mediaPlainText
	mediaExtractable
	mediaUnsupported
)

// ContentPipeline turns one fetched byte buffer plus its declared media
// type into ingestible content. Skips are terminal outcomes, never errors:
// a corrupt document must not abort the surrounding crawl pass.
type ContentPipeline struct {
	extractor driven.TextExtractor
	tables    driven.TableStore
	provider  string
}

// NewContentPipeline creates a content pipeline. The extractor and table
// store are process-wide collaborator handles owned by the caller; provider
// is the label embedded in table descriptions.
func NewContentPipeline(extractor driven.TextExtractor, tables driven.TableStore, provider string) *ContentPipeline {
	if provider == "" {
		provider = "Website"
	}
	return &ContentPipeline{
		extractor: extractor,
		tables:    tables,
		provider:  provider,
	}
}

// Ingest runs the dispatch policy for one node under the given
// per-document ceiling. First matching rule wins; the oversize guard runs
// before any other work.
func (p *ContentPipeline) Ingest(ctx context.Context, node *domain.FetchedNode, maxDocumentLen int) domain.IngestionResult {
	if maxDocumentLen <= 0 {
		maxDocumentLen = domain.DefaultMaxDocumentLen
	}
	if len(node.Content) > oversizeMultiplier*maxDocumentLen {
		logger.Warn("Skipping %s: %d bytes exceeds the ingestion ceiling", node.URL, len(node.Content))
		return domain.IngestionResult{Outcome: domain.OutcomeSkippedTooLarge}
	}

	mediaType := canonicalMediaType(node.MediaType)
	switch p.classify(mediaType) {
	case mediaTabular:
		return p.ingestTable(ctx, node)
	case mediaHTML:
		return p.ingestHTML(node)
	case mediaPlainText:
		return p.ingestText(node)
	case mediaExtractable:
		return p.ingestExtractable(ctx, node, mediaType)
	default:
		logger.Debug("No handler for media type %s (%s)", node.MediaType, node.URL)
		return domain.IngestionResult{Outcome: domain.OutcomeSkippedUnsupported}
	}
}

// classify picks the dispatch variant for a canonical media type.
func (p *ContentPipeline) classify(mediaType string) mediaClass {
	if _, ok := tabularMediaTypes[mediaType]; ok {
		return mediaTabular
	}
	switch {
	case mediaType == "text/html" || mediaType == "application/xhtml+xml":
		return mediaHTML
	case strings.HasPrefix(mediaType, "text/"),
		mediaType == "application/json",
		mediaType == "application/xml":
		return mediaPlainText
	case p.extractor != nil && p.extractor.SupportsMediaType(mediaType):
		return mediaExtractable
	default:
		return mediaUnsupported
	}
}

// ingestTable parses tabular content and writes it to the downstream
// tabular store as a full-replace side effect. On success the result
// carries the explicit empty section so the caller does not also store the
// content as a plain document.
func (p *ContentPipeline) ingestTable(ctx context.Context, node *domain.FetchedNode) domain.IngestionResult {
	if p.tables == nil {
		return domain.IngestionResult{Outcome: domain.OutcomeSkippedUnsupported}
	}

	raw := strings.TrimSpace(string(node.Content))
	records, err := csv.NewReader(strings.NewReader(raw)).ReadAll()
	if err != nil {
		logger.Warn("Skipping table %s: parse failed: %v", node.URL, err)
		return domain.IngestionResult{Outcome: domain.OutcomeSkippedFailed}
	}

	var buf strings.Builder
	writer := csv.NewWriter(&buf)
	if err := writer.WriteAll(records); err != nil {
		logger.Warn("Skipping table %s: rewrite failed: %v", node.URL, err)
		return domain.IngestionResult{Outcome: domain.OutcomeSkippedFailed}
	}

	tableID := node.NativeID
	if tableID == "" {
		tableID = domain.StableIDForURL(node.URL, domain.KindFile)
	}
	fileName := node.FileName
	if fileName == "" {
		fileName = domain.DisplayNameForURL(node.URL)
	}

	upsert := driven.TableUpsert{
		TableID:          tableID,
		TableName:        slugify(truncateRunes(fileName, tableNameMaxInput)),
		TableDescription: fmt.Sprintf("Structured data from %s (%s)", p.provider, fileName),
		CSV:              buf.String(),
		Truncate:         true,
	}
	if err := p.tables.UpsertTable(ctx, upsert); err != nil {
		logger.Warn("Skipping table %s: upsert failed: %v", node.URL, err)
		return domain.IngestionResult{Outcome: domain.OutcomeSkippedFailed}
	}

	return domain.IngestionResult{
		Outcome: domain.OutcomeIngestedAsTable,
		Section: domain.EmptySection(),
	}
}

// ingestHTML extracts the main text content of an HTML page into a flat
// section.
func (p *ContentPipeline) ingestHTML(node *domain.FetchedNode) domain.IngestionResult {
	text, err := htmltext.Extract(node.Content, node.URL)
	if err != nil {
		logger.Warn("Skipping %s: html extraction failed: %v", node.URL, err)
		return domain.IngestionResult{Outcome: domain.OutcomeSkippedFailed}
	}
	if text == "" {
		logger.Debug("No text content in %s", node.URL)
		return domain.IngestionResult{Outcome: domain.OutcomeSkippedFailed}
	}
	return domain.IngestionResult{
		Outcome: domain.OutcomeIngested,
		Section: domain.FlatSection(text),
	}
}

// ingestText decodes plain text into a flat section with no prefix and no
// sub-sections.
func (p *ContentPipeline) ingestText(node *domain.FetchedNode) domain.IngestionResult {
	return domain.IngestionResult{
		Outcome: domain.OutcomeIngested,
		Section: domain.FlatSection(strings.TrimSpace(string(node.Content))),
	}
}

// ingestExtractable sends rich documents to the external extraction
// service and produces one labelled sub-section per page. The top-level
// section carries no content and no prefix; only the per-page children do.
func (p *ContentPipeline) ingestExtractable(ctx context.Context, node *domain.FetchedNode, mediaType string) domain.IngestionResult {
	pages, err := p.extractor.ExtractPages(ctx, node.Content, mediaType)
	if err != nil {
		logger.Warn("Skipping %s: extraction failed: %v", node.URL, err)
		return domain.IngestionResult{Outcome: domain.OutcomeSkippedFailed}
	}
	if len(pages) == 0 {
		logger.Debug("No pages extracted from %s", node.URL)
		return domain.IngestionResult{Outcome: domain.OutcomeSkippedFailed}
	}

	template, hasTemplate := pagePrefixTemplates[mediaType]
	sections := make([]domain.DocumentSection, 0, len(pages))
	for _, page := range pages {
		content := page.Content
		section := domain.DocumentSection{Content: &content}
		if hasTemplate {
			prefix := fmt.Sprintf("\n%s: %d/%d\n", template, page.PageNumber, len(pages))
			section.Prefix = &prefix
		}
		sections = append(sections, section)
	}

	logger.Info("Converted %s to text: %d pages", node.URL, len(pages))
	return domain.IngestionResult{
		Outcome: domain.OutcomeIngested,
		Section: &domain.DocumentSection{Sections: sections},
	}
}

// canonicalMediaType lowercases a declared media type and strips any
// parameters such as charset.
func canonicalMediaType(mediaType string) string {
	mt := strings.ToLower(strings.TrimSpace(mediaType))
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	return mt
}

// slugify reduces a name to lowercase letters, digits and single dashes.
func slugify(name string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(name) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if isAlnum {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// truncateRunes caps a string at n runes.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/custodia-labs/crawlsync/internal/core/domain"
	"github.com/custodia-labs/crawlsync/internal/core/ports/driven"
	"github.com/custodia-labs/crawlsync/internal/core/ports/driving"
)

// Ensure PermissionTreeProjector implements the interface.
var _ driving.PermissionTree = (*PermissionTreeProjector)(nil)

// PermissionTreeProjector is the read side of the hierarchy: it turns
// folder and page rows into the externally consumed list of browsable
// nodes, resolving the folder/page naming collision rule.
type PermissionTreeProjector struct {
	configs  driven.ConfigurationStore
	folders  driven.FolderStore
	pages    driven.PageStore
	collator *collate.Collator
}

// NewPermissionTreeProjector creates a projector. Titles are ordered with
// a case-folding, locale-aware collation.
func NewPermissionTreeProjector(configs driven.ConfigurationStore, folders driven.FolderStore, pages driven.PageStore) *PermissionTreeProjector {
	return &PermissionTreeProjector{
		configs:  configs,
		folders:  folders,
		pages:    pages,
		collator: collate.New(language.Und, collate.Loose),
	}
}

// Children returns the browsable nodes under a scope. A page whose
// normalised URL also exists as a folder wins the display slot: the folder
// is excluded from the listing and the page is marked expandable, exposing
// the folder-kind stable id so navigating into it lists its children.
func (p *PermissionTreeProjector) Children(ctx context.Context, connectorID string, parentInternalID *string) ([]domain.Node, error) {
	cfg, err := p.configs.Get(ctx, connectorID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrConnectorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get configuration: %w", err)
	}

	var parentURL *string
	if parentInternalID != nil {
		parent, err := p.folders.GetByInternalID(ctx, connectorID, cfg.ID, *parentInternalID)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("parent %s: %w", *parentInternalID, domain.ErrNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("get parent folder: %w", err)
		}
		parentURL = &parent.URL
	}

	folders, err := p.folders.ListByParent(ctx, connectorID, cfg.ID, parentURL)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	pages, err := p.pages.ListByParent(ctx, connectorID, cfg.ID, parentURL)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}

	// Container-normalised page URLs, then the folders those pages shadow.
	normalisedPages := make(map[string]struct{}, len(pages))
	for _, page := range pages {
		if n, err := domain.NormaliseFolderURL(page.URL); err == nil {
			normalisedPages[n] = struct{}{}
		}
	}
	shadowed := make(map[string]struct{})
	for _, folder := range folders {
		if _, ok := normalisedPages[folder.URL]; ok {
			shadowed[folder.URL] = struct{}{}
		}
	}

	nodes := make([]domain.Node, 0, len(folders)+len(pages))
	for _, folder := range folders {
		if _, ok := shadowed[folder.URL]; ok {
			// The page representation wins the display slot.
			continue
		}
		nodes = append(nodes, domain.Node{
			InternalID:       folder.InternalID,
			ParentInternalID: folderParentID(folder.ParentURL),
			Title:            domain.DisplayNameForURL(folder.URL),
			Expandable:       true,
			Type:             domain.NodeFolder,
			LastUpdatedAt:    folder.UpdatedAt,
		})
	}

	for _, page := range pages {
		normalised, err := domain.NormaliseFolderURL(page.URL)
		if err != nil {
			normalised = page.URL
		}
		_, isAlsoFolder := shadowed[normalised]

		internalID := ""
		switch {
		case isAlsoFolder:
			internalID = domain.StableIDForURL(normalised, domain.KindFolder)
		case page.DocumentID != nil:
			internalID = *page.DocumentID
		default:
			internalID = domain.StableIDForURL(page.URL, domain.KindFile)
		}

		sourceURL := page.URL
		nodes = append(nodes, domain.Node{
			InternalID:       internalID,
			ParentInternalID: folderParentID(page.ParentURL),
			Title:            domain.DisplayNameForURL(page.URL),
			SourceURL:        &sourceURL,
			Expandable:       isAlsoFolder,
			Type:             domain.NodeFile,
			DocumentID:       page.DocumentID,
			LastUpdatedAt:    page.UpdatedAt,
		})
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		return p.collator.CompareString(nodes[i].Title, nodes[j].Title) < 0
	})
	return nodes, nil
}

// folderParentID maps a parent URL to its folder-kind stable id.
func folderParentID(parentURL *string) *string {
	if parentURL == nil {
		return nil
	}
	id := domain.StableIDForURL(*parentURL, domain.KindFolder)
	return &id
}

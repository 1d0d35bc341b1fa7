package domain

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// ResourceKind distinguishes the two identities a URL can have in the
// hierarchy: a container of child nodes, or a content item.
type ResourceKind string

const (
	// KindFolder identifies the container form of a URL.
	KindFolder ResourceKind = "folder"

	// KindFile identifies the content form of a URL.
	KindFile ResourceKind = "file"
)

// Per-kind UUIDv5 namespaces. Deriving the id from a kind-specific
// namespace guarantees the folder and file ids for the same URL never
// collide, while staying deterministic across process restarts.
var (
	folderNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("crawlsync/folder"))
	fileNamespace   = uuid.NewSHA1(uuid.NameSpaceURL, []byte("crawlsync/file"))
)

// StableIDForURL derives the opaque internal id for a URL and resource kind.
// The mapping is pure: the same URL and kind always produce the same id.
func StableIDForURL(rawURL string, kind ResourceKind) string {
	ns := fileNamespace
	if kind == KindFolder {
		ns = folderNamespace
	}
	return uuid.NewSHA1(ns, []byte(rawURL)).String()
}

// NormaliseFolderURL canonicalises a URL into the form used to represent it
// as a container of child nodes. The same normalisation applies to a page's
// own container form and to a genuine child folder, so trailing-slash and
// fragment variance in the raw fetch address cannot split one logical
// resource into two.
func NormaliseFolderURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: url %q has no scheme or host", ErrInvalidInput, rawURL)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""

	return u.String(), nil
}

// DisplayNameForURL derives a human label from the last non-empty path
// segment of a URL. It falls back to the full URL when the path has no
// segments, such as a bare domain root.
func DisplayNameForURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	segments := pathSegments(u.Path)
	if len(segments) == 0 {
		return rawURL
	}

	last := segments[len(segments)-1]
	if unescaped, err := url.PathUnescape(last); err == nil {
		return unescaped
	}
	return last
}

// ParentFolderURL returns the container URL of a node's logical parent,
// derived from the path one segment up. Returns nil at the domain root.
// Query strings belong to the leaf and are not carried into parents.
func ParentFolderURL(rawURL string) *string {
	normalised, err := NormaliseFolderURL(rawURL)
	if err != nil {
		return nil
	}

	u, err := url.Parse(normalised)
	if err != nil {
		return nil
	}

	segments := pathSegments(u.Path)
	if len(segments) == 0 {
		return nil
	}

	parent := u.Scheme + "://" + u.Host
	if len(segments) > 1 {
		parent += "/" + strings.Join(segments[:len(segments)-1], "/")
	}
	return &parent
}

// FolderChainForURL returns the container URLs for a node and every path
// prefix above it, ordered from the node's own container form up to the
// domain root. The crawl reconciler uses the chain to materialise ancestor
// folders for each discovered page.
func FolderChainForURL(rawURL string) ([]string, error) {
	self, err := NormaliseFolderURL(rawURL)
	if err != nil {
		return nil, err
	}

	chain := []string{self}
	for parent := ParentFolderURL(self); parent != nil; parent = ParentFolderURL(*parent) {
		chain = append(chain, *parent)
	}
	return chain, nil
}

// pathSegments splits a URL path into its non-empty segments.
func pathSegments(path string) []string {
	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

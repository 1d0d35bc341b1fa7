package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStableIDForURL_Deterministic(t *testing.T) {
	first := StableIDForURL("https://example.com/docs", KindFolder)
	second := StableIDForURL("https://example.com/docs", KindFolder)

	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestStableIDForURL_KindsNeverCollide(t *testing.T) {
	urls := []string{
		"https://example.com",
		"https://example.com/docs",
		"https://example.com/docs/guide?page=2",
		"http://localhost:8080/a/b/c",
	}

	for _, u := range urls {
		folderID := StableIDForURL(u, KindFolder)
		fileID := StableIDForURL(u, KindFile)
		assert.NotEqual(t, folderID, fileID, "url %s", u)
	}
}

func TestStableIDForURL_DistinctURLs(t *testing.T) {
	a := StableIDForURL("https://example.com/a", KindFile)
	b := StableIDForURL("https://example.com/b", KindFile)
	assert.NotEqual(t, a, b)
}

func TestNormaliseFolderURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trailing slash stripped",
			input: "https://example.com/docs/",
			want:  "https://example.com/docs",
		},
		{
			name:  "multiple trailing slashes stripped",
			input: "https://example.com/docs///",
			want:  "https://example.com/docs",
		},
		{
			name:  "fragment dropped",
			input: "https://example.com/docs#section-2",
			want:  "https://example.com/docs",
		},
		{
			name:  "host lowercased",
			input: "https://Example.COM/Docs",
			want:  "https://example.com/Docs",
		},
		{
			name:  "query preserved",
			input: "https://example.com/docs?page=2",
			want:  "https://example.com/docs?page=2",
		},
		{
			name:  "bare root",
			input: "https://example.com/",
			want:  "https://example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormaliseFolderURL(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormaliseFolderURL_VariantsConverge(t *testing.T) {
	variants := []string{
		"https://example.com/docs",
		"https://example.com/docs/",
		"https://example.com/docs#top",
		"https://EXAMPLE.com/docs/",
	}

	first, err := NormaliseFolderURL(variants[0])
	require.NoError(t, err)
	for _, v := range variants[1:] {
		got, err := NormaliseFolderURL(v)
		require.NoError(t, err)
		assert.Equal(t, first, got, "variant %s", v)
	}
}

func TestNormaliseFolderURL_Invalid(t *testing.T) {
	_, err := NormaliseFolderURL("not a url")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NormaliseFolderURL("/relative/path")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDisplayNameForURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "last segment",
			input: "https://example.com/docs/getting-started",
			want:  "getting-started",
		},
		{
			name:  "trailing slash ignored",
			input: "https://example.com/docs/getting-started/",
			want:  "getting-started",
		},
		{
			name:  "bare domain falls back to full url",
			input: "https://example.com",
			want:  "https://example.com",
		},
		{
			name:  "root path falls back to full url",
			input: "https://example.com/",
			want:  "https://example.com/",
		},
		{
			name:  "escaped segment unescaped",
			input: "https://example.com/docs/hello%20world",
			want:  "hello world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayNameForURL(tt.input))
		})
	}
}

func TestParentFolderURL(t *testing.T) {
	parent := ParentFolderURL("https://example.com/docs/guide")
	require.NotNil(t, parent)
	assert.Equal(t, "https://example.com/docs", *parent)

	parent = ParentFolderURL("https://example.com/docs")
	require.NotNil(t, parent)
	assert.Equal(t, "https://example.com", *parent)

	assert.Nil(t, ParentFolderURL("https://example.com"))
	assert.Nil(t, ParentFolderURL("https://example.com/"))
}

func TestParentFolderURL_DropsQuery(t *testing.T) {
	parent := ParentFolderURL("https://example.com/docs/guide?page=3")
	require.NotNil(t, parent)
	assert.Equal(t, "https://example.com/docs", *parent)
}

func TestFolderChainForURL(t *testing.T) {
	chain, err := FolderChainForURL("https://example.com/a/b/c")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://example.com/a/b/c",
		"https://example.com/a/b",
		"https://example.com/a",
		"https://example.com",
	}, chain)
}

func TestFolderChainForURL_Root(t *testing.T) {
	chain, err := FolderChainForURL("https://example.com/")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com"}, chain)
}

func TestFolderChainForURL_Invalid(t *testing.T) {
	_, err := FolderChainForURL("://bad")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

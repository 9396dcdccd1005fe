package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLinks(t *testing.T) {
	t.Run("ValidFile", func(t *testing.T) {
		tempDir := t.TempDir()
		t.Setenv(ConfigDirEnvVar, tempDir)
		linksYAML := `
projects:
  - name: "Backend"
    key: "PROJ"
    board_id: 7
    default_issue_type: "Task"
  - name: "Website"
    key: "WEB"
`
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, DefaultLinksFileName), []byte(linksYAML), 0o600))

		links, err := LoadLinks()
		require.NoError(t, err)
		require.Len(t, links.Projects, 2)
		assert.Equal(t, "PROJ", links.Projects[0].Key)
		assert.Equal(t, 7, links.Projects[0].BoardID)
		assert.Equal(t, "Task", links.Projects[0].DefaultIssueType)
	})

	t.Run("MissingFileYieldsEmptyTable", func(t *testing.T) {
		t.Setenv(ConfigDirEnvVar, t.TempDir())

		links, err := LoadLinks()
		require.NoError(t, err, "A missing projects file should not be an error")
		assert.Empty(t, links.Projects)
	})

	t.Run("MalformedFile", func(t *testing.T) {
		tempDir := t.TempDir()
		t.Setenv(ConfigDirEnvVar, tempDir)
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, DefaultLinksFileName), []byte("projects: [broken"), 0o600))

		_, err := LoadLinks()
		require.ErrorIs(t, err, ErrLinksParse)
	})
}

func TestLinksResolve(t *testing.T) {
	links := &LinksConfig{Projects: []ProjectLink{
		{Name: "Backend", Key: "PROJ", BoardID: 7},
		{Name: "Website", Key: "WEB"},
	}}

	t.Run("ByAliasCaseInsensitive", func(t *testing.T) {
		key, link := links.Resolve("backend")
		assert.Equal(t, "PROJ", key)
		require.NotNil(t, link)
		assert.Equal(t, 7, link.BoardID)
	})

	t.Run("ByKeyCaseInsensitive", func(t *testing.T) {
		key, link := links.Resolve("web")
		assert.Equal(t, "WEB", key)
		assert.NotNil(t, link)
	})

	t.Run("UnlinkedPassesThrough", func(t *testing.T) {
		key, link := links.Resolve("OTHER")
		assert.Equal(t, "OTHER", key)
		assert.Nil(t, link)
	})
}

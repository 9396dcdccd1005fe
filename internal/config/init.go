package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

const defaultConfigYAML = `# jiragate configuration.
# Every value can also come from the environment:
#   JIRA_BASE_URL, JIRA_EMAIL, JIRA_API_TOKEN,
#   JIRA_STORY_POINTS_FIELD, JIRA_DEFAULT_BOARD_ID
# The API token is best stored in the OS keyring instead:
#   jiragate config set-token <token>

base_url: "https://your-domain.atlassian.net"
email: "you@example.com"
# api_token: ""

# Custom field holding story point estimates. customfield_10026 is the
# Jira Cloud scrum template default.
story_points_field: "customfield_10026"

# Board used by sprint tools when the call does not name one. 0 means none.
default_board_id: 0

max_results: 50
request_timeout: 30s
`

const defaultLinksYAML = `# Optional project aliases. Tools accepting a project reference resolve
# aliases (case-insensitive) through this table before hitting the tracker.
projects:
  - name: "Example"
    key: "EX"
    # board_id: 1
    # default_issue_type: "Task"
`

// EnsureDir creates the configuration directory if it does not exist.
func EnsureDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("%w: %w", ErrConfigDirCreate, err)
	}
	return dir, nil
}

// WriteDefaultFiles creates the config directory and drops commented starter
// versions of config.yaml and projects.yaml into it. Existing files are left
// untouched.
func WriteDefaultFiles() (string, error) {
	dir, err := EnsureDir()
	if err != nil {
		return "", err
	}
	for _, file := range []struct {
		name    string
		content string
	}{
		{DefaultConfigFileName, defaultConfigYAML},
		{DefaultLinksFileName, defaultLinksYAML},
	} {
		path := filepath.Join(dir, file.name)
		if _, err := os.Stat(path); err == nil {
			log.Debug().Str("path", path).Msg("Config file already exists, leaving it alone")
			continue
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %w", ErrConfigWrite, err)
		}
		if err := os.WriteFile(path, []byte(file.content), 0o600); err != nil {
			return "", fmt.Errorf("%w: %w", ErrConfigWrite, err)
		}
		log.Info().Str("path", path).Msg("Created default config file")
	}
	return dir, nil
}

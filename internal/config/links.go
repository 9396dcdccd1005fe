package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// ProjectLink maps a friendly project alias onto tracker coordinates.
type ProjectLink struct {
	Name             string `yaml:"name"`
	Key              string `yaml:"key"`
	BoardID          int    `yaml:"board_id,omitempty"`
	DefaultIssueType string `yaml:"default_issue_type,omitempty"`
}

// LinksConfig holds the optional project alias table from projects.yaml.
type LinksConfig struct {
	Projects []ProjectLink `yaml:"projects"`
}

// LoadLinks reads projects.yaml from the config directory. A missing file
// yields an empty table, not an error.
func LoadLinks() (*LinksConfig, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, DefaultLinksFileName)

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("path", path).Msg("No projects file, alias resolution disabled")
			return &LinksConfig{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrLinksRead, err)
	}

	var cfg LinksConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLinksParse, err)
	}
	log.Debug().Int("projects", len(cfg.Projects)).Str("path", path).Msg("Loaded project links")
	return &cfg, nil
}

// Resolve maps a project reference (alias or key, case-insensitive) onto
// its link entry. Unlinked references pass through unchanged: the tracker
// remains the authority on whether the key exists.
func (c *LinksConfig) Resolve(ref string) (string, *ProjectLink) {
	for i := range c.Projects {
		link := &c.Projects[i]
		if strings.EqualFold(link.Name, ref) || strings.EqualFold(link.Key, ref) {
			return link.Key, link
		}
	}
	return ref, nil
}

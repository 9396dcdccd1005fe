package config

import "errors"

// Sentinel errors for configuration loading. All of them are fatal at
// startup: the process exits nonzero with a diagnostic on stderr.

// ErrMissingBaseURL indicates JIRA_BASE_URL is not set anywhere.
var ErrMissingBaseURL = errors.New("tracker base URL is not configured (set JIRA_BASE_URL)")

// ErrMissingEmail indicates JIRA_EMAIL is not set anywhere.
var ErrMissingEmail = errors.New("tracker account email is not configured (set JIRA_EMAIL)")

// ErrMissingAPIToken indicates the API token is in neither the environment nor the OS keyring.
var ErrMissingAPIToken = errors.New("tracker API token is not configured (set JIRA_API_TOKEN or store it with 'jiragate config set-token')")

// ErrConfigRead indicates the config file exists but could not be read.
var ErrConfigRead = errors.New("failed to read configuration file")

// ErrConfigParse indicates the config file could not be unmarshalled.
var ErrConfigParse = errors.New("failed to parse configuration file")

// ErrLinksRead indicates the projects file exists but could not be read.
var ErrLinksRead = errors.New("failed to read projects file")

// ErrLinksParse indicates the projects file could not be parsed.
var ErrLinksParse = errors.New("failed to parse projects file")

// ErrConfigDirCreate indicates the config directory could not be created.
var ErrConfigDirCreate = errors.New("failed to create configuration directory")

// ErrConfigWrite indicates a default config file could not be written.
var ErrConfigWrite = errors.New("failed to write configuration file")

// ErrKeyringSet indicates the OS keyring rejected storing the API token.
var ErrKeyringSet = errors.New("failed to store API token in OS keyring")

// ErrKeyringGet indicates an OS keyring failure other than 'not found'.
var ErrKeyringGet = errors.New("failed to read API token from OS keyring")

// Package config loads the server configuration for the Dataverse MCP shim.
//
// Configuration comes from an optional YAML file plus environment variable
// overrides. Environment variables always win, so a fully env-configured
// deployment needs no file at all.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/dataverse-mcp"
	configFileName = "config.yaml"

	// DefaultAuthorityHost is the Entra ID token authority used unless overridden.
	DefaultAuthorityHost = "https://login.microsoftonline.com"

	// DefaultHTTPTimeoutSeconds bounds every outbound REST call.
	DefaultHTTPTimeoutSeconds = 30
)

// Config holds everything the server needs to reach Dataverse and the Flow API.
type Config struct {
	// OrgURL is the Dataverse organization URL, e.g. "https://org.crm.dynamics.com".
	// Required for all Dataverse tools.
	OrgURL string `yaml:"orgUrl"`

	// TenantID is the Entra ID tenant used for the client-credentials token grant.
	TenantID string `yaml:"tenantId"`

	// ClientID and ClientSecret identify the app registration.
	ClientID     string `yaml:"clientId"`
	ClientSecret string `yaml:"clientSecret"`

	// FlowEnvironmentID is the Power Platform environment GUID used by the
	// Flow API tools. Required only for those tools.
	FlowEnvironmentID string `yaml:"flowEnvironmentId"`

	// AuthorityHost overrides the token authority (e.g. for sovereign clouds).
	AuthorityHost string `yaml:"authorityHost,omitempty"`

	// HTTPTimeoutSeconds bounds each outbound request.
	HTTPTimeoutSeconds int `yaml:"httpTimeoutSeconds,omitempty"`
}

// DefaultConfigPath returns the default config directory under the user's home.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user home directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir), nil
}

// Load reads config.yaml from configPath (a directory), applies environment
// overrides, and validates the result. A missing file is not an error; the
// environment alone may supply a complete configuration.
func Load(configPath string) (Config, error) {
	cfg := Config{
		AuthorityHost:      DefaultAuthorityHost,
		HTTPTimeoutSeconds: DefaultHTTPTimeoutSeconds,
	}

	data, err := os.ReadFile(filepath.Join(configPath, configFileName))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("malformed config.yaml in %s: %w", configPath, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Fall through to env overrides.
	default:
		return Config{}, fmt.Errorf("reading config.yaml from %s: %w", configPath, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overlays environment variables onto the config.
func (c *Config) applyEnv() {
	setIfPresent := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setIfPresent(&c.OrgURL, "DATAVERSE_ORG_URL")
	setIfPresent(&c.TenantID, "AZURE_TENANT_ID")
	setIfPresent(&c.ClientID, "AZURE_CLIENT_ID")
	setIfPresent(&c.ClientSecret, "AZURE_CLIENT_SECRET")
	setIfPresent(&c.FlowEnvironmentID, "FLOW_ENVIRONMENT_ID")
	setIfPresent(&c.AuthorityHost, "AZURE_AUTHORITY_HOST")

	if v := os.Getenv("DATAVERSE_HTTP_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.HTTPTimeoutSeconds = n
		}
	}
}

// Validate checks the fields every tool depends on. Org URL and Flow
// environment are each optional on their own (a deployment may use only one
// API surface), but the credential triple is always required.
func (c *Config) Validate() error {
	if c.TenantID == "" {
		return errors.New("tenantId is required (or set AZURE_TENANT_ID)")
	}
	if c.ClientID == "" {
		return errors.New("clientId is required (or set AZURE_CLIENT_ID)")
	}
	if c.ClientSecret == "" {
		return errors.New("clientSecret is required (or set AZURE_CLIENT_SECRET)")
	}
	if c.OrgURL == "" && c.FlowEnvironmentID == "" {
		return errors.New("at least one of orgUrl or flowEnvironmentId must be set")
	}
	if c.OrgURL != "" {
		u, err := url.Parse(c.OrgURL)
		if err != nil || u.Scheme != "https" || u.Host == "" {
			return fmt.Errorf("orgUrl %q must be an absolute https URL", c.OrgURL)
		}
	}
	return nil
}

// NormalizedOrgURL returns the org URL without a trailing slash, suitable for
// joining with API paths and for use as a token audience.
func (c *Config) NormalizedOrgURL() string {
	return strings.TrimRight(c.OrgURL, "/")
}

// TokenURL returns the v2.0 token endpoint for the configured tenant.
func (c *Config) TokenURL() string {
	return fmt.Sprintf("%s/%s/oauth2/v2.0/token", strings.TrimRight(c.AuthorityHost, "/"), c.TenantID)
}

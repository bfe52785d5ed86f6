package types

import (
	"errors"
	"net/url"
)

// Config holds the service configuration assembled from the config
// file, environment, and flags.
type Config struct {
	DataDir    string `json:"data_dir" yaml:"data_dir"`
	ListenAddr string `json:"listen_addr" yaml:"listen_addr"`
	WebhookURL string `json:"webhook_url" yaml:"webhook_url"`
	Production bool   `json:"production" yaml:"production"`
	LogLevel   string `json:"log_level" yaml:"log_level"`
}

// Config validation errors.
var (
	ErrListenAddrEmpty   = errors.New("listen address must not be empty")
	ErrLogLevelUnknown   = errors.New("unknown log level")
	ErrWebhookURLInvalid = errors.New("invalid webhook URL")
)

// knownLogLevels lists the levels Validate accepts. Empty means the
// default (info).
var knownLogLevels = map[string]bool{
	"":      true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.ListenAddr == "" {
		return ErrListenAddrEmpty
	}
	if !knownLogLevels[c.LogLevel] {
		return ErrLogLevelUnknown
	}
	if c.WebhookURL != "" {
		u, err := url.Parse(c.WebhookURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return ErrWebhookURLInvalid
		}
	}
	return nil
}

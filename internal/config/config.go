// Package config manages application configuration.
package config

import (
	"os"
	"strings"
)

// Environment variables that override the configuration file.
const (
	EnvRemoveOptional = "JPEG2PDF_REMOVE_OPTIONAL"
	EnvPDFVersion     = "JPEG2PDF_PDF_VERSION"
)

// Config represents the application configuration.
type Config struct {
	Convert ConvertConfig `yaml:"convert"`
	PDF     PDFConfig     `yaml:"pdf"`
}

// ConvertConfig contains JPEG handling options.
type ConvertConfig struct {
	RemoveOptionalMetadata bool `yaml:"remove_optional_metadata"`
}

// PDFConfig contains output document options.
type PDFConfig struct {
	Version     string `yaml:"version"`
	Producer    string `yaml:"producer"`
	Interpolate bool   `yaml:"interpolate"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Convert: ConvertConfig{
			RemoveOptionalMetadata: false,
		},
		PDF: PDFConfig{
			Version:     "1.5",
			Producer:    "jpeg2pdf",
			Interpolate: false,
		},
	}
}

// ApplyEnv overrides configuration values with environment variables. An
// unset or false JPEG2PDF_REMOVE_OPTIONAL leaves the file setting alone.
func (c *Config) ApplyEnv() {
	if envBool(EnvRemoveOptional) {
		c.Convert.RemoveOptionalMetadata = true
	}
	c.PDF.Version = envString(EnvPDFVersion, c.PDF.Version)
}

func envString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// envBool accepts "true", "1" and "yes" in any case.
func envBool(key string) bool {
	value := strings.ToLower(os.Getenv(key))
	return value == "true" || value == "1" || value == "yes"
}

package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roboco-io/jpeg2pdf/internal/pdf"
)

// Keys lists the settings accepted by Set, in display order.
var Keys = []string{
	"convert.remove_optional_metadata",
	"pdf.version",
	"pdf.producer",
	"pdf.interpolate",
}

// Set parses value and stores it under the dotted key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "convert.remove_optional_metadata":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q", key, value)
		}
		c.Convert.RemoveOptionalMetadata = b

	case "pdf.version":
		if !pdf.ValidVersion(value) {
			return fmt.Errorf("unsupported PDF version %q (supported: %s)",
				value, strings.Join(pdf.SupportedVersions, ", "))
		}
		c.PDF.Version = value

	case "pdf.producer":
		c.PDF.Producer = value

	case "pdf.interpolate":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q", key, value)
		}
		c.PDF.Interpolate = b

	default:
		return fmt.Errorf("unknown config key %q (supported: %s)", key, strings.Join(Keys, ", "))
	}
	return nil
}

// Validate checks that the configuration can be used for a conversion.
func (c *Config) Validate() error {
	if c.PDF.Version != "" && !pdf.ValidVersion(c.PDF.Version) {
		return fmt.Errorf("unsupported PDF version %q (supported: %s)",
			c.PDF.Version, strings.Join(pdf.SupportedVersions, ", "))
	}
	return nil
}

// PDFOptions returns the emitter options for this configuration.
func (c *Config) PDFOptions() pdf.Options {
	return pdf.Options{
		Version:     c.PDF.Version,
		Producer:    c.PDF.Producer,
		Interpolate: c.PDF.Interpolate,
	}
}

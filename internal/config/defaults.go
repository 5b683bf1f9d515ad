package config

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/jackzampolin/pagenum/internal/label"
)

// ErrInvalidKey is returned when a config key contains invalid characters.
var ErrInvalidKey = errors.New("invalid config key")

// ErrUnknownKey is returned for keys with no default entry.
var ErrUnknownKey = errors.New("unknown config key")

// Entry is one documented configuration key.
type Entry struct {
	Key         string `json:"key" yaml:"key"`
	Value       any    `json:"value" yaml:"value"`
	Description string `json:"description" yaml:"description"`
}

// DefaultEntries returns every configuration key with its default value.
// These are registered as viper defaults, so each one can also be set with
// a PAGENUM_ environment variable (dots become underscores).
func DefaultEntries() []Entry {
	d := DefaultConfig()
	n := d.Numbering
	return []Entry{
		// Numbering
		{Key: "numbering.start_value", Value: n.StartValue, Description: "Number shown on the first labeled page"},
		{Key: "numbering.format", Value: n.Format, Description: "Label format: 1,2,3 | i,ii,iii | I,II,III | a,b,c | A,B,C | -1- | 1/100 | Page 1"},
		{Key: "numbering.include_first_page", Value: n.IncludeFirstPage, Description: "Label the first page (when false the second page shows start_value)"},
		{Key: "numbering.font_size", Value: n.FontSize, Description: "Label font size in points"},
		{Key: "numbering.font_color", Value: n.FontColor, Description: "Label color as #rrggbb"},
		{Key: "numbering.position", Value: n.Position, Description: "bottom-right | bottom-left | bottom-center | top-right | top-left | top-center | custom"},
		{Key: "numbering.custom_x", Value: n.CustomX, Description: "Horizontal position in percent of page width (custom only)"},
		{Key: "numbering.custom_y", Value: n.CustomY, Description: "Vertical position in percent of page height (custom only)"},
		{Key: "numbering.opacity", Value: label.DefaultOpacity, Description: "Label opacity between 0 and 1"},

		// Preview
		{Key: "preview.scale", Value: d.Preview.Scale, Description: "Preview zoom relative to 72 DPI"},
		{Key: "preview.debounce_ms", Value: d.Preview.DebounceMS, Description: "Quiet period before option changes rebuild the preview"},
		{Key: "preview.pdftoppm", Value: d.Preview.Pdftoppm, Description: "pdftoppm binary used for rendering"},
		{Key: "preview.scratch_dir", Value: d.Preview.ScratchDir, Description: "Directory for temporary render files (empty: home scratch dir)"},

		// Server
		{Key: "server.host", Value: d.Server.Host, Description: "Address the server binds to"},
		{Key: "server.port", Value: d.Server.Port, Description: "Port the server listens on"},
		{Key: "server.max_upload_mb", Value: d.Server.MaxUploadMB, Description: "Largest accepted upload in megabytes"},
		{Key: "server.session_ttl_minutes", Value: d.Server.SessionTTLMinutes, Description: "Idle minutes before an uploaded document is dropped"},
	}
}

// DefaultFor returns the default entry for key.
func DefaultFor(key string) (Entry, error) {
	if err := ValidateKey(key); err != nil {
		return Entry{}, err
	}
	for _, e := range DefaultEntries() {
		if e.Key == key {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// ValidateKey checks if a config key contains only allowed characters.
// Valid keys contain: letters, digits, dots, underscores, and hyphens.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidKey)
	}
	for i, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != '_' && r != '-' {
			return fmt.Errorf("%w: invalid character %q at position %d", ErrInvalidKey, r, i)
		}
	}
	// Don't allow keys starting or ending with dots
	if key[0] == '.' || key[len(key)-1] == '.' {
		return fmt.Errorf("%w: key cannot start or end with a dot", ErrInvalidKey)
	}
	return nil
}

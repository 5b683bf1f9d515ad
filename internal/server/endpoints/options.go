package endpoints

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/cobra"

	"github.com/jackzampolin/pagenum/internal/apperr"
	"github.com/jackzampolin/pagenum/internal/label"
	"github.com/jackzampolin/pagenum/internal/svcctx"
)

// maxOptionsBody bounds option request bodies.
const maxOptionsBody = 64 << 10

// OptionsSchema is the JSON Schema for numbering option bodies. Every field
// is optional; missing fields take the configured defaults.
const OptionsSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "start_value": {"type": "integer"},
    "format": {"type": "string"},
    "include_first_page": {"type": "boolean"},
    "font_size": {"type": "integer", "minimum": 1, "maximum": 500},
    "font_color": {"type": "string", "pattern": "^#?[0-9a-fA-F]{6}$"},
    "position": {"type": "string"},
    "custom_x": {"type": "number", "minimum": 0, "maximum": 100},
    "custom_y": {"type": "number", "minimum": 0, "maximum": 100},
    "opacity": {"type": "number", "minimum": 0, "maximum": 1}
  }
}`

var optionsSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("options.json", strings.NewReader(OptionsSchema)); err != nil {
		return nil, fmt.Errorf("failed to load options schema: %w", err)
	}
	schema, err := compiler.Compile("options.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile options schema: %w", err)
	}
	return schema, nil
})

// ValidateOptionsJSON checks body against OptionsSchema.
func ValidateOptionsJSON(body []byte) error {
	schema, err := optionsSchema()
	if err != nil {
		return err
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return apperr.InputErr("options", fmt.Errorf("invalid request body: %w", err))
	}
	if err := schema.Validate(doc); err != nil {
		return apperr.InputErr("options", fmt.Errorf("invalid options: %w", err))
	}
	return nil
}

// MergeOptions overlays a JSON options body onto base and resolves the
// result. An empty body yields base. base itself is never modified.
func MergeOptions(base label.RawOptions, body []byte) (label.RawOptions, label.Options, error) {
	raw := base.Clone()
	if len(bytes.TrimSpace(body)) > 0 {
		if err := ValidateOptionsJSON(body); err != nil {
			return raw, label.Options{}, err
		}
		if err := json.Unmarshal(body, &raw); err != nil {
			return raw, label.Options{}, apperr.InputErr("options", fmt.Errorf("invalid request body: %w", err))
		}
	}

	opts, err := raw.Resolve()
	if err != nil {
		return raw, label.Options{}, apperr.InputErr("options", err)
	}
	return raw, opts, nil
}

// decodeOptions reads the options body of r on top of the configured
// defaults.
func decodeOptions(r *http.Request) (label.RawOptions, label.Options, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxOptionsBody))
	if err != nil {
		return label.RawOptions{}, label.Options{}, apperr.InputErr("options", fmt.Errorf("failed to read request body: %w", err))
	}
	return MergeOptions(svcctx.DefaultOptionsFrom(r.Context()), body)
}

// OptionFlags binds the numbering options to command flags.
type OptionFlags struct {
	startValue       int
	format           string
	includeFirstPage bool
	fontSize         int
	fontColor        string
	position         string
	customX          float64
	customY          float64
	opacity          float64
}

// AddOptionFlags registers the numbering option flags on cmd.
func AddOptionFlags(cmd *cobra.Command) *OptionFlags {
	d := label.DefaultRawOptions()
	f := &OptionFlags{}
	fl := cmd.Flags()
	fl.IntVar(&f.startValue, "start-value", d.StartValue, "number shown on the first labeled page")
	fl.StringVar(&f.format, "format", d.Format, "label format: 1,2,3 | i,ii,iii | I,II,III | a,b,c | A,B,C | -1- | 1/100 | \"Page 1\"")
	fl.BoolVar(&f.includeFirstPage, "include-first-page", d.IncludeFirstPage, "label the first page")
	fl.IntVar(&f.fontSize, "font-size", d.FontSize, "label font size in points")
	fl.StringVar(&f.fontColor, "font-color", d.FontColor, "label color as #rrggbb")
	fl.StringVar(&f.position, "position", d.Position, "bottom-right | bottom-left | bottom-center | top-right | top-left | top-center | custom")
	fl.Float64Var(&f.customX, "custom-x", d.CustomX, "horizontal position in percent (custom only)")
	fl.Float64Var(&f.customY, "custom-y", d.CustomY, "vertical position in percent (custom only)")
	fl.Float64Var(&f.opacity, "opacity", label.DefaultOpacity, "label opacity between 0 and 1")
	return f
}

// Overrides returns the flags set on the command line, keyed by their JSON
// option names.
func (f *OptionFlags) Overrides(cmd *cobra.Command) map[string]any {
	fl := cmd.Flags()
	out := make(map[string]any)
	set := func(flag, key string, v any) {
		if fl.Changed(flag) {
			out[key] = v
		}
	}
	set("start-value", "start_value", f.startValue)
	set("format", "format", f.format)
	set("include-first-page", "include_first_page", f.includeFirstPage)
	set("font-size", "font_size", f.fontSize)
	set("font-color", "font_color", f.fontColor)
	set("position", "position", f.position)
	set("custom-x", "custom_x", f.customX)
	set("custom-y", "custom_y", f.customY)
	set("opacity", "opacity", f.opacity)
	return out
}

// Resolve overlays the flags set on the command line onto base.
func (f *OptionFlags) Resolve(cmd *cobra.Command, base label.RawOptions) (label.RawOptions, label.Options, error) {
	body, err := json.Marshal(f.Overrides(cmd))
	if err != nil {
		return base, label.Options{}, err
	}
	return MergeOptions(base, body)
}

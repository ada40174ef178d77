package render

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"apidir/internal/domain"
)

// Format selects how command results are written.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists the accepted --output values.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatTOML}

// ParseFormat accepts a format name case-insensitively; empty means text.
func ParseFormat(raw string) (Format, error) {
	value := Format(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return FormatText, nil
	}
	for _, format := range Formats {
		if value == format {
			return format, nil
		}
	}
	return "", domain.InvalidArgumentError("parse format", fmt.Sprintf("unknown output format %q (want text, json, yaml or toml)", raw))
}

// TextWriter is implemented by values with a human-readable rendering.
type TextWriter interface {
	WriteText(w io.Writer) error
}

// tomlRootKey wraps values that TOML cannot encode at the document root.
const tomlRootKey = "items"

// Encode writes v in the given format. Text uses TextWriter when v
// implements it and falls back to fmt's default formatting.
func Encode(w io.Writer, format Format, v any) error {
	switch format {
	case FormatText, "":
		if tw, ok := v.(TextWriter); ok {
			return tw.WriteText(w)
		}
		_, err := fmt.Fprintln(w, v)
		return err
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return domain.E(domain.CodeInternal, "encode json", "", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return domain.E(domain.CodeInternal, "encode yaml", "", err)
		}
		return enc.Close()
	case FormatTOML:
		data, err := toml.Marshal(tomlRoot(v))
		if err != nil {
			return domain.E(domain.CodeInternal, "encode toml", "", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return domain.InvalidArgumentError("encode", fmt.Sprintf("unknown output format %q", format))
	}
}

func tomlRoot(v any) any {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return map[string]any{}
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct, reflect.Map:
		return v
	default:
		return map[string]any{tomlRootKey: v}
	}
}

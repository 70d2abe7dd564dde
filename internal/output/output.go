// Package output renders connection records, one per line or document, in encounter order.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/neoclaw-ai/privatelink/internal/connections"
)

// Format names an output encoding.
type Format string

const (
	// FormatLegacy is the historical line format. Its endpointID and
	// serviceName keys are unquoted, so it is not valid JSON.
	FormatLegacy Format = "legacy"
	// FormatJSON is one valid JSON object per line.
	FormatJSON Format = "json"
	// FormatYAML is one YAML document per record.
	FormatYAML Format = "yaml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatLegacy, FormatJSON, FormatYAML}

// ParseFormat resolves a format name. The empty string selects FormatLegacy.
func ParseFormat(name string) (Format, error) {
	normalized := Format(strings.ToLower(strings.TrimSpace(name)))
	if normalized == "" {
		return FormatLegacy, nil
	}
	for _, f := range Formats {
		if f == normalized {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported output format %q (allowed: %q, %q, %q)", name, FormatLegacy, FormatJSON, FormatYAML)
}

// Writer writes connection records.
type Writer interface {
	Write(connections.Details) error
	Close() error
}

// New returns a Writer for format.
func New(format Format, w io.Writer) (Writer, error) {
	switch format {
	case FormatLegacy, "":
		return legacyWriter{out: w}, nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		return jsonWriter{enc: enc}, nil
	case FormatYAML:
		return yamlWriter{enc: yaml.NewEncoder(w)}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

type record struct {
	ConnectionID  string `json:"connection_id" yaml:"connection_id"`
	Name          string `json:"name" yaml:"name"`
	LinkID        string `json:"linkID" yaml:"linkID"`
	Status        string `json:"status" yaml:"status"`
	EndpointID    string `json:"endpointID" yaml:"endpointID"`
	ResourceGroup string `json:"resourceGroup" yaml:"resourceGroup"`
	ServiceName   string `json:"serviceName" yaml:"serviceName"`
}

func newRecord(d connections.Details) record {
	return record{
		ConnectionID:  d.ID,
		Name:          d.Name,
		LinkID:        d.LinkID,
		Status:        d.Status,
		EndpointID:    d.EndpointID,
		ResourceGroup: d.ResourceGroup,
		ServiceName:   d.ServiceName,
	}
}

type legacyWriter struct {
	out io.Writer
}

// Write prints the record exactly as existing consumers expect it. Values are
// not escaped.
func (w legacyWriter) Write(d connections.Details) error {
	_, err := fmt.Fprintf(w.out,
		`{"connection_id": "%s", "name": "%s", "linkID": "%s", "status": "%s", endpointID: "%s", "resourceGroup": "%s", serviceName: "%s"}`+"\n",
		d.ID, d.Name, d.LinkID, d.Status, d.EndpointID, d.ResourceGroup, d.ServiceName,
	)
	return err
}

func (legacyWriter) Close() error { return nil }

type jsonWriter struct {
	enc *json.Encoder
}

func (w jsonWriter) Write(d connections.Details) error {
	return w.enc.Encode(newRecord(d))
}

func (jsonWriter) Close() error { return nil }

type yamlWriter struct {
	enc *yaml.Encoder
}

func (w yamlWriter) Write(d connections.Details) error {
	return w.enc.Encode(newRecord(d))
}

func (w yamlWriter) Close() error {
	return w.enc.Close()
}

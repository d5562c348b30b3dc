package dashboard

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// MetricManifestDocument models a YAML/JSON manifest describing metric
// definitions, used for config-driven catalog registration.
type MetricManifestDocument struct {
	Version string           `json:"version" yaml:"version"`
	Name    string           `json:"name,omitempty" yaml:"name,omitempty"`
	Metrics []ManifestMetric `json:"metrics" yaml:"metrics"`
	Source  string           `json:"-" yaml:"-"`
}

// ManifestMetric describes a single metric entry within a manifest.
type ManifestMetric struct {
	Definition  MetricDefinition `json:"definition" yaml:"definition"`
	Maintainers []string         `json:"maintainers,omitempty" yaml:"maintainers,omitempty"`
	Tags        []string         `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// LoadManifestFile reads a manifest from disk, registers it against the
// registry, and returns the document.
func (r *Registry) LoadManifestFile(path string) (*MetricManifestDocument, error) {
	doc, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	if err := r.LoadManifestDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadManifestDocument registers metric definitions from a decoded manifest.
func (r *Registry) LoadManifestDocument(doc *MetricManifestDocument) error {
	if doc == nil {
		return fmt.Errorf("dashboard: manifest document is nil")
	}
	for _, metric := range doc.Metrics {
		if err := r.RegisterMetric(metric.Definition); err != nil {
			return fmt.Errorf("dashboard: register metric %s from %s: %w", metric.Definition.Code, doc.Source, err)
		}
	}
	return nil
}

// ReadManifest loads a manifest file from disk without registering it.
func ReadManifest(path string) (*MetricManifestDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashboard: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("dashboard: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader.
func DecodeManifest(r io.Reader) (*MetricManifestDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc MetricManifestDocument
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("dashboard: manifest is empty")
		}
		return nil, fmt.Errorf("dashboard: parse manifest: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// WriteManifest serializes the document to the given writer as YAML.
func WriteManifest(w io.Writer, doc *MetricManifestDocument) error {
	if doc == nil {
		return fmt.Errorf("dashboard: manifest document is nil")
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return err
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("dashboard: encode manifest: %w", err)
	}
	return nil
}

func (doc *MetricManifestDocument) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
	for i := range doc.Metrics {
		if doc.Metrics[i].Definition.Kind == "" {
			doc.Metrics[i].Definition.Kind = MetricKindSeries
		}
	}
}

// Validate checks the manifest for structural problems before registration.
func (doc *MetricManifestDocument) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("dashboard: unsupported manifest version %q", doc.Version)
	}
	if len(doc.Metrics) == 0 {
		return fmt.Errorf("dashboard: manifest defines no metrics")
	}
	seen := make(map[string]bool, len(doc.Metrics))
	for _, metric := range doc.Metrics {
		code := metric.Definition.Code
		if code == "" {
			return fmt.Errorf("dashboard: manifest metric is missing a code")
		}
		if seen[code] {
			return fmt.Errorf("dashboard: manifest defines metric %s twice", code)
		}
		seen[code] = true
		if metric.Definition.Name == "" {
			return fmt.Errorf("dashboard: metric %s is missing a name", code)
		}
	}
	return nil
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"

	"github.com/romaluev/horyco-dashboard/components/dashboard"
)

type cli struct {
	Seed     seedCmd     `cmd:"" help:"Install the starter dashboard into a config file."`
	Inspect  inspectCmd  `cmd:"" help:"Print the persisted dashboard config as JSON."`
	Scaffold scaffoldCmd `cmd:"" help:"Add a metric definition to a metric manifest."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Dashboard maintenance utility for back-office deployments."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

type seedCmd struct {
	ConfigPath string `required:"" type:"path" help:"Path to the dashboard config JSON file."`
	Manifest   string `type:"path" help:"Optional metric manifest to register before seeding."`
}

func (cmd *seedCmd) Run(ctx context.Context) error {
	storage := dashboard.NewFileStorage(cmd.ConfigPath)
	registry := dashboard.NewRegistry()
	if cmd.Manifest != "" {
		if _, err := registry.LoadManifestFile(cmd.Manifest); err != nil {
			return err
		}
	}
	service := dashboard.NewService(dashboard.Options{
		Store:    dashboard.NewStore(dashboard.StoreOptions{Storage: storage}),
		Registry: registry,
	})
	if err := service.Store().Hydrate(ctx); err != nil {
		return err
	}
	if err := service.Seed(ctx); err != nil {
		return err
	}
	config, err := service.Config(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Seeded %d widgets into %s\n", len(config.Widgets), cmd.ConfigPath)
	return nil
}

type inspectCmd struct {
	ConfigPath string `required:"" type:"path" help:"Path to the dashboard config JSON file."`
}

func (cmd *inspectCmd) Run(ctx context.Context) error {
	storage := dashboard.NewFileStorage(cmd.ConfigPath)
	config, ok, err := storage.Load(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("dashctl: no usable config at %s", cmd.ConfigPath)
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(config)
}

type scaffoldCmd struct {
	Code         string   `required:"" help:"Metric code (e.g. sales.revenue)."`
	Name         string   `help:"Display name (defaults to a title-cased code suffix)."`
	Description  string   `help:"One-line description recorded in the manifest."`
	Kind         string   `default:"series" enum:"series,list" help:"Metric kind: series or list."`
	Category     string   `default:"custom" help:"Metric category (sales, menu, inventory, ...)."`
	ManifestPath string   `required:"" type:"path" help:"Path to the metric manifest YAML file to update."`
	SchemaPath   string   `type:"path" help:"Optional JSON schema file for the data source params."`
	Tag          []string `help:"Optional tags (use multiple --tag flags)."`
	Maintainer   []string `help:"Maintainers to record in the manifest."`
	Overwrite    bool     `help:"Replace an existing entry with the same code."`
}

func (cmd *scaffoldCmd) Run(_ context.Context) error {
	if !strings.Contains(cmd.Code, ".") {
		return fmt.Errorf("dashctl: metric code %s must contain at least one '.' segment", cmd.Code)
	}
	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("dashctl: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}
	if !cmd.Overwrite {
		for _, metric := range doc.Metrics {
			if metric.Definition.Code == cmd.Code {
				return fmt.Errorf("dashctl: manifest already defines metric %s (use --overwrite to replace)", cmd.Code)
			}
		}
	}

	schema, err := cmd.loadSchema()
	if err != nil {
		return err
	}

	name := cmd.Name
	if name == "" {
		name = deriveDisplayName(cmd.Code)
	}
	entry := dashboard.ManifestMetric{
		Definition: dashboard.MetricDefinition{
			Code:         cmd.Code,
			Name:         name,
			Description:  cmd.Description,
			Kind:         dashboard.MetricKind(cmd.Kind),
			Category:     cmd.Category,
			ParamsSchema: schema,
		},
		Maintainers: cmd.Maintainer,
		Tags:        cmd.Tag,
	}

	replaced := false
	if cmd.Overwrite {
		for idx := range doc.Metrics {
			if doc.Metrics[idx].Definition.Code == cmd.Code {
				doc.Metrics[idx] = entry
				replaced = true
				break
			}
		}
	}
	if !replaced {
		doc.Metrics = append(doc.Metrics, entry)
	}

	sort.Slice(doc.Metrics, func(i, j int) bool {
		return doc.Metrics[i].Definition.Code < doc.Metrics[j].Definition.Code
	})

	if err := writeManifestFile(manifestPath, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Added %s to %s\n", cmd.Code, manifestPath)
	return nil
}

func (cmd *scaffoldCmd) loadSchema() (map[string]any, error) {
	if cmd.SchemaPath == "" {
		return nil, nil
	}
	data, err := os.ReadFile(cmd.SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("dashctl: read schema file: %w", err)
	}
	var schema map[string]any
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("dashctl: parse schema JSON: %w", err)
	}
	return schema, nil
}

func loadOrInitManifest(path string) (*dashboard.MetricManifestDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &dashboard.MetricManifestDocument{
				Version: dashboard.ManifestVersion,
				Metrics: []dashboard.ManifestMetric{},
				Source:  path,
			}, nil
		}
		return nil, fmt.Errorf("dashctl: stat manifest: %w", err)
	}
	return dashboard.ReadManifest(path)
}

func writeManifestFile(path string, doc *dashboard.MetricManifestDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("dashctl: mkdir %s: %w", filepath.Dir(path), err)
	}
	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("dashctl: create manifest %s: %w", path, err)
	}
	defer file.Close()
	return dashboard.WriteManifest(file, doc)
}

func deriveDisplayName(code string) string {
	parts := strings.Split(code, ".")
	slug := strings.TrimSpace(parts[len(parts)-1])
	if slug == "" {
		slug = code
	}
	return strcase.ToCase(slug, strcase.TitleCase, ' ')
}

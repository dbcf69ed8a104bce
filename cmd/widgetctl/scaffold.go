package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-bestseller/components/bestseller"
)

type scaffoldCmd struct {
	Code            string   `required:"" help:"Fully-qualified widget code (e.g. storefront.widget.new_products)."`
	Name            string   `required:"" help:"Display name for the widget."`
	Description     string   `required:"" help:"One-line description used in manifests."`
	Category        string   `default:"catalog" help:"Widget category (catalog, promo, etc.)."`
	Template        string   `default:"bestseller" help:"Template rendering the widget."`
	ManifestPath    string   `required:"" type:"path" help:"Path to the widget manifest YAML file to update."`
	SchemaPath      string   `type:"path" help:"Optional path to a JSON schema file for the widget options."`
	Tag             []string `help:"Optional tags to include in the manifest (use multiple --tag flags)."`
	Maintainer      []string `help:"Maintainers to record in the manifest."`
	DocsURL         string   `help:"Link to provider documentation."`
	ProviderPackage string   `default:"github.com/goliatone/go-bestseller/components/bestseller/providers" help:"Go package where the provider factory lives."`
	ProviderEntry   string   `help:"Factory identifier recorded in the manifest (defaults to New<Widget>Provider)."`
	ProviderOut     string   `help:"File path for the generated provider stub (defaults to components/bestseller/providers/<code>_provider.go)."`
	Overwrite       bool     `help:"Overwrite existing provider stub / manifest entry if present."`
	SkipProvider    bool     `name:"skip-provider" help:"Skip provider stub generation."`
}

func (cmd *scaffoldCmd) Run(_ context.Context) error {
	return cmd.run(os.Stdout)
}

func (cmd *scaffoldCmd) run(out io.Writer) error {
	if err := cmd.validate(); err != nil {
		return err
	}
	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("widgetctl: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}
	if !cmd.Overwrite {
		for _, widget := range doc.Widgets {
			if widget.Definition.Code == cmd.Code {
				return fmt.Errorf("widgetctl: manifest already defines widget %s (use --overwrite to replace)", cmd.Code)
			}
		}
	}

	schema, err := cmd.loadSchema()
	if err != nil {
		return err
	}

	providerType := deriveBaseName(cmd.Code) + "Provider"
	providerEntry := cmd.ProviderEntry
	if providerEntry == "" {
		providerEntry = fmt.Sprintf("%s.New%s", cmd.ProviderPackage, providerType)
	}

	entry := bestseller.ManifestWidget{
		Definition: bestseller.WidgetDefinition{
			Code:        cmd.Code,
			Name:        cmd.Name,
			Description: cmd.Description,
			Category:    cmd.Category,
			Template:    cmd.Template,
			Schema:      schema,
		},
		Provider: bestseller.ManifestProvider{
			Name:    fmt.Sprintf("%s Provider", cmd.Name),
			Summary: cmd.Description,
			Entry:   providerEntry,
			Package: cmd.ProviderPackage,
			DocsURL: cmd.DocsURL,
		},
		Maintainers: cmd.Maintainer,
		Tags:        cmd.Tag,
	}
	doc.Widgets = upsertWidget(doc.Widgets, entry)

	if err := writeManifest(manifestPath, doc); err != nil {
		return err
	}

	if cmd.SkipProvider {
		fmt.Fprintf(out, "✓ Added %s to %s (provider entry recorded as %s)\n", cmd.Code, manifestPath, providerEntry)
		return nil
	}

	providerPath := cmd.ProviderOut
	if providerPath == "" {
		providerPath = filepath.Join("components", "bestseller", "providers", fmt.Sprintf("%s_provider.go", sanitizeFileName(cmd.Code)))
	}
	if err := writeProviderStub(providerPath, providerType, cmd.Code, cmd.Overwrite); err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Added %s to %s and generated %s\n", cmd.Code, manifestPath, providerPath)
	return nil
}

func (cmd *scaffoldCmd) validate() error {
	if !strings.Contains(cmd.Code, ".") {
		return fmt.Errorf("widgetctl: widget code %s must contain at least one '.' segment", cmd.Code)
	}
	return nil
}

func (cmd *scaffoldCmd) loadSchema() (map[string]any, error) {
	if cmd.SchemaPath == "" {
		return map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		}, nil
	}
	data, err := os.ReadFile(cmd.SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("widgetctl: read schema file: %w", err)
	}
	var schema map[string]any
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("widgetctl: parse schema JSON: %w", err)
	}
	return schema, nil
}

// upsertWidget replaces the entry with the same code or appends it, keeping codes sorted.
func upsertWidget(widgets []bestseller.ManifestWidget, entry bestseller.ManifestWidget) []bestseller.ManifestWidget {
	replaced := false
	for idx := range widgets {
		if widgets[idx].Definition.Code == entry.Definition.Code {
			widgets[idx] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		widgets = append(widgets, entry)
	}
	sort.Slice(widgets, func(i, j int) bool {
		return widgets[i].Definition.Code < widgets[j].Definition.Code
	})
	return widgets
}

func loadOrInitManifest(path string) (*bestseller.WidgetManifestDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &bestseller.WidgetManifestDocument{
				Version: bestseller.ManifestVersion,
				Widgets: []bestseller.ManifestWidget{},
				Source:  path,
			}, nil
		}
		return nil, fmt.Errorf("widgetctl: stat manifest: %w", err)
	}
	return bestseller.ReadManifest(path)
}

func writeManifest(path string, doc *bestseller.WidgetManifestDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("widgetctl: mkdir %s: %w", filepath.Dir(path), err)
	}
	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("widgetctl: create manifest %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("widgetctl: write manifest: %w", err)
	}
	return encoder.Close()
}

const providerStub = `package providers

import (
	"context"

	"github.com/goliatone/go-bestseller/components/bestseller"
)

// %[1]s fetches data for %[2]s widgets.
type %[1]s struct{}

// New%[1]s builds the provider for registration under %[2]s.
func New%[1]s() bestseller.Provider {
	return &%[1]s{}
}

// Fetch returns the widget payload.
func (p *%[1]s) Fetch(ctx context.Context, meta bestseller.WidgetContext) (bestseller.WidgetData, error) {
	return bestseller.WidgetData{
		"instance_id": meta.Instance.ID,
		"title":       bestseller.NewConfiguration(meta.Instance.Configuration).Title(),
		"products":    []map[string]any{},
	}, nil
}
`

func writeProviderStub(path, providerType, code string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("widgetctl: provider stub %s already exists (use --overwrite or --provider-out)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("widgetctl: mkdir provider dir: %w", err)
	}
	content := fmt.Sprintf(providerStub, providerType, code)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("widgetctl: write provider stub: %w", err)
	}
	return nil
}

func deriveBaseName(code string) string {
	parts := strings.Split(code, ".")
	slug := strings.TrimSpace(parts[len(parts)-1])
	if slug == "" {
		slug = code
	}
	return strcase.ToCamel(slug)
}

func sanitizeFileName(code string) string {
	replacer := strings.NewReplacer(".", "_", "-", "_", "/", "_", " ", "_")
	return strings.ToLower(replacer.Replace(code))
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-bestseller/components/bestseller"
	"github.com/goliatone/go-bestseller/pkg/catalog"
)

type renderCmd struct {
	DB         string            `required:"" env:"WIDGETCTL_DB" help:"Path to the SQLite catalog database."`
	Instance   string            `help:"Widget instance id (defaults to a generated id)."`
	Count      int               `name:"count" default:"10" help:"Number of bestseller products to display."`
	Title      string            `default:"Bestsellers" help:"Widget title."`
	Subtitle   string            `help:"Widget subtitle."`
	DummyIDs   string            `name:"dummy-ids" help:"Comma separated product ids shown instead of the report."`
	Carousel   bool              `help:"Render products in a carousel."`
	Chart      bool              `help:"Render a sales volume chart below the products."`
	StoreID    string            `name:"store" default:"1" env:"WIDGETCTL_STORE" help:"Store id for the viewer context."`
	ThemeID    string            `name:"theme" default:"default" help:"Theme id for the viewer context."`
	Group      string            `name:"customer-group" default:"0" help:"Customer group id for the viewer context."`
	Param      map[string]string `help:"Request parameters (key=value)."`
	Format     string            `enum:"html,json" default:"html" help:"Output format (html or json)."`
	Currency   string            `default:"$" help:"Currency symbol used by the price renderer."`
	MediaBase  string            `name:"media-base" default:"/media" help:"Base URL for product images."`
	BaseURL    string            `name:"base-url" help:"Storefront base URL for product and cart links."`
	OmitParams bool              `name:"omit-params" help:"Exclude request parameters from the cache key."`
	LogLevel   string            `name:"log-level" default:"info" env:"WIDGETCTL_LOG_LEVEL" help:"Log level (debug, info, warn, error)."`
}

func (cmd *renderCmd) Run(ctx context.Context) error {
	logger, err := buildLogger(cmd.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	return cmd.run(ctx, os.Stdout, logger)
}

func (cmd *renderCmd) run(ctx context.Context, out io.Writer, logger *zap.Logger) error {
	store, err := catalog.Open(ctx, cmd.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	renderer, err := bestseller.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("widgetctl: build renderer: %w", err)
	}
	service := bestseller.NewService(bestseller.Options{
		Renderer:  renderer,
		Telemetry: bestseller.NewZapTelemetry(logger),
		Storefront: bestseller.ProviderOptions{
			Loader:    store,
			Report:    store,
			Images:    bestseller.NewTemplateImageHelper(renderer, cmd.MediaBase),
			URLs:      bestseller.PathURLBuilder{BaseURL: cmd.BaseURL},
			Layout:    bestseller.NewDefaultLayout(cmd.Currency),
			CacheKeys: bestseller.CacheKeyPolicy{OmitRequestParams: cmd.OmitParams},
		},
	})
	config := cmd.configuration()
	if err := service.ValidateConfiguration(bestseller.DefinitionCode, config); err != nil {
		return err
	}
	req := cmd.request(config)
	controller := bestseller.NewController(service)

	if cmd.Format == "json" {
		payload, err := controller.Payload(ctx, req)
		if err != nil {
			return err
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}
	rendered, err := controller.RenderTemplate(ctx, req, out)
	if err != nil {
		return err
	}
	logger.Debug("widget rendered",
		zap.String("instance_id", rendered.InstanceID),
		zap.Strings("identities", rendered.Identities),
	)
	return nil
}

func (cmd *renderCmd) configuration() map[string]any {
	config := map[string]any{
		bestseller.OptionProductsCount:  cmd.Count,
		bestseller.OptionTitle:          cmd.Title,
		bestseller.OptionSubtitle:       cmd.Subtitle,
		bestseller.OptionUseCarousel:    boolFlag(cmd.Carousel),
		bestseller.OptionShowSalesChart: boolFlag(cmd.Chart),
	}
	if cmd.DummyIDs != "" {
		config[bestseller.OptionDummyProductsIDs] = cmd.DummyIDs
	}
	return config
}

func (cmd *renderCmd) request(config map[string]any) bestseller.RenderRequest {
	instanceID := cmd.Instance
	if instanceID == "" {
		instanceID = "cli-" + uuid.NewString()
	}
	params := url.Values{}
	for key, value := range cmd.Param {
		params.Set(key, value)
	}
	return bestseller.RenderRequest{
		Instance: bestseller.WidgetInstance{
			ID:            instanceID,
			DefinitionID:  bestseller.DefinitionCode,
			Configuration: config,
		},
		Viewer: bestseller.ViewerContext{
			StoreID:       cmd.StoreID,
			ThemeID:       cmd.ThemeID,
			CustomerGroup: cmd.Group,
		},
		Params: params,
	}
}

func boolFlag(v bool) int {
	if v {
		return 1
	}
	return 0
}

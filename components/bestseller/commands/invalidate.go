package commands

import (
	"context"
	"errors"
	"strings"

	gocommand "github.com/goliatone/go-command"
)

// InvalidateIdentitiesInput lists the cache identities whose rendered widgets are stale.
// OnRemoved, when set, receives the number of cache entries dropped by this call.
type InvalidateIdentitiesInput struct {
	Identities []string  `json:"identities"`
	OnRemoved  func(int) `json:"-"`
}

type invalidationService interface {
	InvalidateIdentities(ctx context.Context, identities []string) int
}

// InvalidateIdentitiesCommand drops cached widget output after catalog changes.
type InvalidateIdentitiesCommand struct {
	service   invalidationService
	telemetry Telemetry
}

// NewInvalidateIdentitiesCommand creates the command.
func NewInvalidateIdentitiesCommand(service invalidationService, telemetry Telemetry) *InvalidateIdentitiesCommand {
	return &InvalidateIdentitiesCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[InvalidateIdentitiesInput] = (*InvalidateIdentitiesCommand)(nil)

// Execute invalidates every cached render tagged with one of the identities.
func (c *InvalidateIdentitiesCommand) Execute(ctx context.Context, msg InvalidateIdentitiesInput) error {
	if c.service == nil {
		return errors.New("invalidate command requires service")
	}
	identities := make([]string, 0, len(msg.Identities))
	for _, identity := range msg.Identities {
		if trimmed := strings.TrimSpace(identity); trimmed != "" {
			identities = append(identities, trimmed)
		}
	}
	if len(identities) == 0 {
		return errors.New("invalidate command requires at least one identity")
	}
	removed := c.service.InvalidateIdentities(ctx, identities)
	c.telemetry.Record(ctx, EventInvalidate, map[string]any{
		"identities": identities,
		"removed":    removed,
	})
	if msg.OnRemoved != nil {
		msg.OnRemoved(removed)
	}
	return nil
}

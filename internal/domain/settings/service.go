package settings

import "context"

type SettingsService interface {
	// Get returns the persisted settings, or Defaults when none are saved.
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, req UpdateSettingsRequest) (Settings, error)
}

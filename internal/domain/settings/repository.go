package settings

import "context"

type SettingsRepository interface {
	// Get returns ErrSettingsNotFound until the first Upsert.
	Get(ctx context.Context) (Settings, error)
	Upsert(ctx context.Context, s Settings) (Settings, error)
}

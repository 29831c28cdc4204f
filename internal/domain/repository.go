package domain

// SettingsRepository is a secondary port that defines how to persist settings.
// This interface is defined in the domain layer and implemented by adapters.
type SettingsRepository interface {
	Load() (Settings, error)
	Save(settings Settings) error
}

// IDGenerator is a secondary port that hands out break identifiers.
type IDGenerator interface {
	NewID() string
}

package services

import (
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/repositories"
	"backoffice/internal/settings"
	"backoffice/internal/utils"
)

// settingsCache is the process-wide snapshot over app_settings. Advisory
// only; writes go straight to the database and clear it.
var settingsCache = &settings.Cache{
	TTL: 30 * time.Second,
	Load: func() (map[string]string, error) {
		return repositories.SettingsRepository{}.All()
	},
}

type SettingsService struct {
	Repo      repositories.SettingsRepository
	RequestID string

	// Cache overrides the shared snapshot in tests.
	Cache *settings.Cache
}

func (s SettingsService) cache() *settings.Cache {
	if s.Cache != nil {
		return s.Cache
	}
	return settingsCache
}

func (s SettingsService) All() (map[string]string, error) {
	return s.cache().All()
}

func (s SettingsService) Get(key string) (string, bool, error) {
	return s.cache().Get(key)
}

// Update writes through to app_settings and invalidates the snapshot so the
// next read sees the new value.
func (s SettingsService) Update(key, value string) error {
	if utils.TrimOrEmpty(key) == "" {
		return domain.ValidationError{Field: "key", Msg: "is required"}
	}
	if err := s.Repo.Upsert(utils.TrimOrEmpty(key), value); err != nil {
		return err
	}
	s.cache().Clear()
	utils.LogEvent(s.RequestID, "settings", "update", "key="+key)
	return nil
}

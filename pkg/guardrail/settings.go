package guardrail

import (
	"context"
	"time"

	"property-assistant-be/internal/pkg/logger"
	"property-assistant-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const (
	settingsKey = "room_dimensions"
	settingsTTL = 5 * time.Minute
)

// Settings is the per-tenant configuration of the dimension guardrail,
// editable from the developer's room dimensions panel.
type Settings struct {
	Enabled          bool   `json:"enabled"`
	ShowDisclaimer   bool   `json:"show_disclaimer"`
	AttachFloorplans bool   `json:"attach_floorplans"`
	DisclaimerText   string `json:"disclaimer_text"`
}

func DefaultSettings() Settings {
	return Settings{
		Enabled:          true,
		ShowDisclaimer:   true,
		AttachFloorplans: true,
		DisclaimerText: "Please note: These dimensions are provided as a guide only. " +
			"For exact measurements, please refer to the official floor plans and architectural drawings. " +
			"We recommend verifying dimensions independently before making any purchasing decisions based on room sizes.",
	}
}

// SettingsProvider reads tenant settings with a short in-process cache so
// every chat turn does not hit the settings table.
type SettingsProvider struct {
	settings contract.DeveloperSettingRepository
	cache    *cache.Cache
	log      logger.ILogger
}

func NewSettingsProvider(settings contract.DeveloperSettingRepository, log logger.ILogger) *SettingsProvider {
	return &SettingsProvider{
		settings: settings,
		cache:    cache.New(settingsTTL, 10*time.Minute),
		log:      log,
	}
}

// Get returns the tenant's guardrail settings, falling back to defaults
// when the row is missing, partial, or the read fails.
func (p *SettingsProvider) Get(ctx context.Context, tenantId uuid.UUID) Settings {
	cacheKey := tenantId.String()
	if x, found := p.cache.Get(cacheKey); found {
		return x.(Settings)
	}

	result := DefaultSettings()

	value, err := p.settings.FindValue(ctx, tenantId, settingsKey)
	if err != nil {
		p.log.Warn("guardrail", "settings lookup failed, using defaults", map[string]interface{}{
			"tenant_id": tenantId.String(),
			"error":     err.Error(),
		})
		return result
	}

	if value != nil {
		if v, ok := value["enabled"].(bool); ok {
			result.Enabled = v
		}
		if v, ok := value["show_disclaimer"].(bool); ok {
			result.ShowDisclaimer = v
		}
		if v, ok := value["attach_floorplans"].(bool); ok {
			result.AttachFloorplans = v
		}
		if v, ok := value["disclaimer_text"].(string); ok && v != "" {
			result.DisclaimerText = v
		}
	}

	p.cache.Set(cacheKey, result, cache.DefaultExpiration)
	return result
}

package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/runoshun/ironjira/internal/domain"
)

// InitConfigInput contains the input for the InitConfig use case.
type InitConfigInput struct {
	Config *domain.Config // Values rendered into the template (nil = defaults)
	Global bool           // Write the global file instead of the data directory one
}

// InitConfigOutput contains the output of the InitConfig use case.
type InitConfigOutput struct {
	Path string // Path to the created config file
}

// InitConfig writes a commented config file for the user to edit.
type InitConfig struct {
	configManager domain.ConfigManager
}

// NewInitConfig creates a new InitConfig use case.
func NewInitConfig(configManager domain.ConfigManager) *InitConfig {
	return &InitConfig{configManager: configManager}
}

// Execute renders the template into the selected location.
// An existing file is left untouched and reported as ErrConfigExists with its path.
func (uc *InitConfig) Execute(_ context.Context, in InitConfigInput) (*InitConfigOutput, error) {
	cfg := in.Config
	if cfg == nil {
		cfg = domain.NewDefaultConfig()
	}

	info, write := uc.target(in.Global)
	if err := write(cfg); err != nil {
		if errors.Is(err, domain.ErrConfigExists) {
			return nil, fmt.Errorf("%w: %s", err, info.Path)
		}
		return nil, fmt.Errorf("init config: %w", err)
	}
	return &InitConfigOutput{Path: info.Path}, nil
}

func (uc *InitConfig) target(global bool) (domain.ConfigInfo, func(*domain.Config) error) {
	if global {
		return uc.configManager.GetGlobalConfigInfo(), uc.configManager.InitGlobalConfig
	}
	return uc.configManager.GetRepoConfigInfo(), uc.configManager.InitRepoConfig
}

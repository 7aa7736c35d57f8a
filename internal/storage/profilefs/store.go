// Package profilefs implements file-based storage for collected company
// profiles. One JSON document per company, replaced on every save.
package profilefs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/praveshk/stockpulse/internal/common"
	"github.com/praveshk/stockpulse/internal/models"
)

// Store provides file-based JSON storage for collected profiles.
type Store struct {
	basePath    string
	profilesDir string
	logger      *common.Logger
}

// NewProfileStore creates a new profile file store.
func NewProfileStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create profile store path %s: %w", path, err)
	}
	profilesDir := filepath.Join(path, "profiles")
	if err := os.MkdirAll(profilesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create profiles directory: %w", err)
	}

	logger.Info().Str("path", path).Msg("Profile store opened")
	return &Store{
		basePath:    path,
		profilesDir: profilesDir,
		logger:      logger,
	}, nil
}

// DataPath returns the base data path.
func (s *Store) DataPath() string {
	return s.basePath
}

// GetProfile returns the cached profile for a company, or an error when
// none exists.
func (s *Store) GetProfile(ctx context.Context, companyName string) (*models.CollectedProfile, error) {
	path := s.profilePath(companyName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no cached profile for '%s'", companyName)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("cached profile for '%s' is empty", companyName)
	}

	var profile models.CollectedProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse cached profile: %w", err)
	}
	return &profile, nil
}

// SaveProfile stores a profile atomically, replacing any previous one.
func (s *Store) SaveProfile(ctx context.Context, profile *models.CollectedProfile) error {
	if profile == nil || profile.CompanyName == "" {
		return fmt.Errorf("profile must have a company name")
	}

	jsonData, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	jsonData = append(jsonData, '\n')

	tmpFile, err := os.CreateTemp(s.profilesDir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(jsonData); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.profilePath(profile.CompanyName)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	s.logger.Debug().Str("company", profile.CompanyName).Msg("Profile saved")
	return nil
}

// Close is a no-op for file-based storage.
func (s *Store) Close() error {
	return nil
}

func (s *Store) profilePath(companyName string) string {
	return filepath.Join(s.profilesDir, profileKey(companyName)+".json")
}

// profileKey normalizes a company name into a stable, filesystem-safe key.
func profileKey(companyName string) string {
	key := strings.ToLower(strings.TrimSpace(companyName))
	key = strings.Join(strings.Fields(key), "_")
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_")
	return r.Replace(key)
}

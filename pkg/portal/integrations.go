package portal

import (
	"context"
	"fmt"
	"net/url"

	"github.com/talentbridge/portal/pkg/auth"
)

// IntegrationSettings are the recruiter-facing settings of one ATS
// integration. The API key itself is write-only.
type IntegrationSettings struct {
	Provider       string            `json:"provider" yaml:"provider"`
	Enabled        bool              `json:"enabled" yaml:"enabled"`
	APIKey         string            `json:"api_key,omitempty" yaml:"-"`
	HasAPIKey      bool              `json:"has_api_key" yaml:"has_api_key"`
	SyncInterval   string            `json:"sync_interval,omitempty" yaml:"sync_interval,omitempty"`
	FieldMappings  map[string]string `json:"field_mappings,omitempty" yaml:"field_mappings,omitempty"`
	LastSyncedAt   string            `json:"last_synced_at,omitempty" yaml:"last_synced_at,omitempty"`
	LastSyncStatus string            `json:"last_sync_status,omitempty" yaml:"last_sync_status,omitempty"`
}

// SyncJob is the gateway's handle for a sync it has scheduled.
type SyncJob struct {
	ID        string `json:"id" yaml:"id"`
	Provider  string `json:"provider" yaml:"provider"`
	Status    string `json:"status" yaml:"status"`
	StartedAt string `json:"started_at,omitempty" yaml:"started_at,omitempty"`
}

// GetIntegration reads the settings for provider, e.g. "greenhouse".
func (s *Service) GetIntegration(ctx context.Context, provider, token string) (*IntegrationSettings, error) {
	token, err := auth.Require(token)
	if err != nil {
		return nil, err
	}

	var settings IntegrationSettings
	if err := s.client.Get(ctx, integrationPath(provider), token, &settings); err != nil {
		return nil, fmt.Errorf("failed to get integration: %w", err)
	}
	if settings.Provider == "" {
		settings.Provider = provider
	}
	return &settings, nil
}

// UpdateIntegration replaces the settings for provider.
func (s *Service) UpdateIntegration(ctx context.Context, provider string, settings IntegrationSettings, token string) (*IntegrationSettings, error) {
	token, err := auth.Require(token)
	if err != nil {
		return nil, err
	}

	settings.Provider = provider
	var updated IntegrationSettings
	if err := s.client.Put(ctx, integrationPath(provider), settings, token, &updated); err != nil {
		return nil, fmt.Errorf("failed to update integration: %w", err)
	}
	if updated.Provider == "" {
		updated.Provider = provider
	}
	return &updated, nil
}

// TriggerSync asks the gateway to run a sync now. The sync itself runs
// remotely; the returned job only identifies it.
func (s *Service) TriggerSync(ctx context.Context, provider, token string) (*SyncJob, error) {
	token, err := auth.Require(token)
	if err != nil {
		return nil, err
	}

	var job SyncJob
	if err := s.client.Post(ctx, integrationPath(provider)+"/sync", nil, token, &job); err != nil {
		return nil, fmt.Errorf("failed to trigger sync: %w", err)
	}
	if job.Provider == "" {
		job.Provider = provider
	}

	s.logger.Info("sync requested", "provider", provider, "job", job.ID, "status", job.Status)
	return &job, nil
}

func integrationPath(provider string) string {
	return fmt.Sprintf("/api/integrations/%s", url.PathEscape(provider))
}

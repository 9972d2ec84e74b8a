// Package portal contains typed helpers for the recruiter and candidate
// portal endpoints that are not documents: candidates, team invites,
// integration settings and admin statistics.
//
// Every helper is a thin passthrough. Sync scheduling, payouts and reviews
// happen on the gateway.
package portal

import (
	"github.com/hashicorp/go-hclog"

	"github.com/talentbridge/portal/pkg/gateway"
)

// Service groups the portal helpers around one gateway client.
type Service struct {
	client *gateway.Client
	logger hclog.Logger
}

// NewService creates a portal service on top of client.
func NewService(client *gateway.Client, logger hclog.Logger) *Service {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Service{
		client: client,
		logger: logger.Named("portal"),
	}
}

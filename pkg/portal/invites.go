package portal

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/talentbridge/portal/pkg/auth"
	"github.com/talentbridge/portal/pkg/gateway"
)

// Team roles that can be invited.
const (
	RoleAdmin     = "admin"
	RoleRecruiter = "recruiter"
	RoleViewer    = "viewer"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Invite is a pending or accepted team invite.
type Invite struct {
	ID        string `json:"id" yaml:"id"`
	Email     string `json:"email" yaml:"email"`
	Role      string `json:"role" yaml:"role"`
	Status    string `json:"status" yaml:"status"`
	CreatedAt string `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	ExpiresAt string `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

// NewInvite is the body of an invite request.
type NewInvite struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Validate checks the invite before it is sent.
func (n NewInvite) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.Email,
			validation.Required,
			validation.Match(emailPattern).Error("must be a valid email address"),
		),
		validation.Field(&n.Role,
			validation.Required,
			validation.In(RoleAdmin, RoleRecruiter, RoleViewer),
		),
	)
}

// ListInvites returns the team's invites.
func (s *Service) ListInvites(ctx context.Context, token string) ([]Invite, error) {
	token, err := auth.Require(token)
	if err != nil {
		return nil, err
	}

	invites := []Invite{}
	if _, err := s.client.GetPage(ctx, "/api/team/invites", gateway.PageParams{}, token, &invites); err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}
	return invites, nil
}

// CreateInvite sends a team invite.
func (s *Service) CreateInvite(ctx context.Context, invite NewInvite, token string) (*Invite, error) {
	token, err := auth.Require(token)
	if err != nil {
		return nil, err
	}

	invite.Email = strings.TrimSpace(strings.ToLower(invite.Email))
	if err := invite.Validate(); err != nil {
		return nil, fmt.Errorf("invalid invite: %w", err)
	}

	var created Invite
	if err := s.client.Post(ctx, "/api/team/invites", invite, token, &created); err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}

	s.logger.Debug("created invite", "id", created.ID, "role", created.Role)
	return &created, nil
}

// RevokeInvite cancels a pending invite.
func (s *Service) RevokeInvite(ctx context.Context, id, token string) error {
	token, err := auth.Require(token)
	if err != nil {
		return err
	}

	path := fmt.Sprintf("/api/team/invites/%s", url.PathEscape(id))
	if err := s.client.Delete(ctx, path, token, nil); err != nil {
		return fmt.Errorf("failed to revoke invite: %w", err)
	}
	return nil
}

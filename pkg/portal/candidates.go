package portal

import (
	"context"
	"fmt"
	"net/url"

	"github.com/talentbridge/portal/pkg/auth"
	"github.com/talentbridge/portal/pkg/gateway"
)

// Candidate is a candidate profile as the recruiter portal sees it.
type Candidate struct {
	ID          string   `json:"id" yaml:"id"`
	FirstName   string   `json:"first_name" yaml:"first_name"`
	LastName    string   `json:"last_name" yaml:"last_name"`
	Email       string   `json:"email" yaml:"email"`
	Phone       string   `json:"phone,omitempty" yaml:"phone,omitempty"`
	Headline    string   `json:"headline,omitempty" yaml:"headline,omitempty"`
	Location    string   `json:"location,omitempty" yaml:"location,omitempty"`
	Stage       string   `json:"stage,omitempty" yaml:"stage,omitempty"`
	Skills      []string `json:"skills,omitempty" yaml:"skills,omitempty"`
	LinkedInURL string   `json:"linkedin_url,omitempty" yaml:"linkedin_url,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// CandidateUpdate is a partial update; nil fields are left untouched.
type CandidateUpdate struct {
	FirstName   *string  `json:"first_name,omitempty"`
	LastName    *string  `json:"last_name,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	Headline    *string  `json:"headline,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Stage       *string  `json:"stage,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	LinkedInURL *string  `json:"linkedin_url,omitempty"`
}

// ListCandidates returns one page of candidates.
func (s *Service) ListCandidates(ctx context.Context, params gateway.PageParams, token string) ([]Candidate, gateway.Pagination, error) {
	token, err := auth.Require(token)
	if err != nil {
		return nil, gateway.Pagination{}, err
	}

	candidates := []Candidate{}
	page, err := s.client.GetPage(ctx, "/api/candidates", params, token, &candidates)
	if err != nil {
		return nil, gateway.Pagination{}, fmt.Errorf("failed to list candidates: %w", err)
	}
	return candidates, page, nil
}

// GetCandidate retrieves a candidate by id.
func (s *Service) GetCandidate(ctx context.Context, id, token string) (*Candidate, error) {
	token, err := auth.Require(token)
	if err != nil {
		return nil, err
	}

	var c Candidate
	if err := s.client.Get(ctx, candidatePath(id), token, &c); err != nil {
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return &c, nil
}

// UpdateCandidate applies a partial update and returns the stored profile.
func (s *Service) UpdateCandidate(ctx context.Context, id string, update CandidateUpdate, token string) (*Candidate, error) {
	token, err := auth.Require(token)
	if err != nil {
		return nil, err
	}

	var c Candidate
	if err := s.client.Patch(ctx, candidatePath(id), update, token, &c); err != nil {
		return nil, fmt.Errorf("failed to update candidate: %w", err)
	}
	return &c, nil
}

func candidatePath(id string) string {
	return fmt.Sprintf("/api/candidates/%s", url.PathEscape(id))
}

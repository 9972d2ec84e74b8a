package portal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/talentbridge/portal/pkg/auth"
	"github.com/talentbridge/portal/pkg/gateway"
)

// AdminStats is the admin dashboard summary.
type AdminStats struct {
	Candidates     int     `mapstructure:"candidates" json:"candidates" yaml:"candidates"`
	Applications   int     `mapstructure:"applications" json:"applications" yaml:"applications"`
	Jobs           int     `mapstructure:"jobs" json:"jobs" yaml:"jobs"`
	PendingInvites int     `mapstructure:"pending_invites" json:"pending_invites" yaml:"pending_invites"`
	Placements     int     `mapstructure:"placements" json:"placements" yaml:"placements"`
	Revenue        float64 `mapstructure:"total_revenue" json:"total_revenue" yaml:"total_revenue"`
	TimeToHireDays float64 `mapstructure:"avg_time_to_hire_days" json:"avg_time_to_hire_days" yaml:"avg_time_to_hire_days"`
}

// countSources are the list endpoints whose pagination.total feeds the
// matching AdminStats counter.
var countSources = []struct {
	path string
	set  func(*AdminStats, int)
}{
	{"/api/candidates", func(s *AdminStats, n int) { s.Candidates = n }},
	{"/api/applications", func(s *AdminStats, n int) { s.Applications = n }},
	{"/api/jobs", func(s *AdminStats, n int) { s.Jobs = n }},
	{"/api/team/invites?status=pending", func(s *AdminStats, n int) { s.PendingInvites = n }},
}

// GetAdminStats builds the dashboard summary. Gateway-computed figures
// come from /api/admin/stats when that endpoint exists; entity counts are
// read from the pagination totals of the list endpoints, keeping the
// summary figure when a list reports no total. Calls are made one after
// another.
func (s *Service) GetAdminStats(ctx context.Context, token string) (*AdminStats, error) {
	token, err := auth.Require(token)
	if err != nil {
		return nil, err
	}

	stats := &AdminStats{}

	var summary map[string]any
	err = s.client.Get(ctx, "/api/admin/stats", token, &summary)
	switch {
	case errors.Is(err, gateway.ErrNotFound):
		s.logger.Debug("admin stats endpoint not available, using list totals only")
	case err != nil:
		return nil, fmt.Errorf("failed to get admin stats: %w", err)
	default:
		if err := decodeStats(summary, stats); err != nil {
			return nil, err
		}
	}

	for _, src := range countSources {
		var discard []json.RawMessage
		page, err := s.client.GetPage(ctx, src.path, gateway.PageParams{Page: 1, PerPage: 1}, token, &discard)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", src.path, err)
		}
		if page.HasTotal() {
			src.set(stats, page.Total)
		}
	}

	return stats, nil
}

func decodeStats(summary map[string]any, out *AdminStats) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       numericHook,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("failed to build stats decoder: %w", err)
	}
	if err := dec.Decode(summary); err != nil {
		return fmt.Errorf("failed to decode admin stats: %w", err)
	}
	return nil
}

// numericHook parses numbers and numeric strings headed for numeric fields
// as floats, so fractional counts truncate instead of failing the decode.
// Values that do not parse decode as zero.
var numericHook mapstructure.DecodeHookFuncType = func(from, to reflect.Type, data any) (any, error) {
	var s string
	switch v := data.(type) {
	case json.Number:
		s = v.String()
	case string:
		s = strings.TrimSpace(v)
	default:
		return data, nil
	}

	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
	default:
		return data, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return float64(0), nil
	}
	return f, nil
}

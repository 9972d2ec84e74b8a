package gateway

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Pagination is the metadata block of a paginated list response.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page,omitempty"`
	PerPage    int `json:"per_page,omitempty"`
	TotalPages int `json:"total_pages,omitempty"`

	hasTotal bool
}

// HasTotal reports whether the response carried a total. A zero Total
// without one means the total is unknown, not that the list is empty.
func (p Pagination) HasTotal() bool {
	return p.hasTotal
}

// PageParams are the query parameters understood by paginated endpoints.
type PageParams struct {
	Page    int
	PerPage int
}

// Values encodes the parameters, leaving out zero values.
func (p PageParams) Values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(p.PerPage))
	}
	return q
}

type pageEnvelope struct {
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		Total      *int `json:"total"`
		Page       int  `json:"page"`
		PerPage    int  `json:"per_page"`
		TotalPages int  `json:"total_pages"`
	} `json:"pagination"`
}

// DecodePage splits a paginated body into its items and pagination block.
// Bodies without a pagination block are treated as a single page whose
// total is unknown (zero). Items is left untouched when the body carries no
// data.
func DecodePage(body json.RawMessage, items any) (Pagination, error) {
	var env pageEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		// Bare arrays are a single, unpaginated page.
		if err := json.Unmarshal(body, items); err != nil {
			return Pagination{}, fmt.Errorf("failed to decode page: %w", err)
		}
		return Pagination{}, nil
	}

	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, items); err != nil {
			return Pagination{}, fmt.Errorf("failed to decode page items: %w", err)
		}
	}

	if env.Pagination == nil {
		return Pagination{}, nil
	}
	p := Pagination{
		Page:       env.Pagination.Page,
		PerPage:    env.Pagination.PerPage,
		TotalPages: env.Pagination.TotalPages,
	}
	if env.Pagination.Total != nil {
		p.Total = *env.Pagination.Total
		p.hasTotal = true
	}
	return p, nil
}

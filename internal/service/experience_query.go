package service

import (
	"math"
	"strconv"
	"strings"

	"github.com/placement-portal/experience-service/internal/domain"
	"github.com/placement-portal/experience-service/internal/repository"
)

// ExperienceQuery carries raw filter parameters as received from a client.
// Empty strings mean the parameter was not supplied.
type ExperienceQuery struct {
	Company    string
	Department string
	Type       string
	MinPackage string
	MaxPackage string
	// MinLPA and MaxLPA are older names for the package bounds. They are
	// consulted when the newer parameter is absent or malformed.
	MinLPA   string
	MaxLPA   string
	Selected string
}

// BuildExperienceFilter converts raw parameters into a filter. Parameters
// that cannot be parsed are left out of the filter and their names returned
// in dropped.
func BuildExperienceFilter(q ExperienceQuery) (filter repository.ExperienceFilter, dropped []string) {
	if v := strings.TrimSpace(q.Company); v != "" {
		filter.Company = &v
	}
	if v := strings.TrimSpace(q.Department); v != "" {
		filter.Department = &v
	}
	if v := strings.TrimSpace(q.Type); v != "" {
		t := domain.ExperienceType(v)
		filter.Type = &t
	}

	var ok bool
	if filter.MinPackage, ok = firstBound(q.MinPackage, q.MinLPA); !ok {
		dropped = append(dropped, "minPackage")
	}
	if filter.MaxPackage, ok = firstBound(q.MaxPackage, q.MaxLPA); !ok {
		dropped = append(dropped, "maxPackage")
	}

	if v := strings.TrimSpace(q.Selected); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			filter.Selected = &b
		} else {
			dropped = append(dropped, "selected")
		}
	}
	return filter, dropped
}

// firstBound returns the first candidate that parses. ok is false only when
// some candidate was supplied and none of them parsed.
func firstBound(candidates ...string) (*float64, bool) {
	ok := true
	for _, raw := range candidates {
		v, valid := parseBound(raw)
		if v != nil {
			return v, true
		}
		ok = ok && valid
	}
	return nil, ok
}

// parseBound returns nil, true for an absent value and nil, false for one
// that is present but not a finite number.
func parseBound(raw string) (*float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, false
	}
	return &v, true
}

package service

import "testing"

func TestBuildExperienceFilterDropsMalformedValues(t *testing.T) {
	filter, dropped := BuildExperienceFilter(ExperienceQuery{
		Company:    " goo ",
		MinPackage: "abc",
		MaxPackage: "NaN",
		Selected:   "maybe",
	})
	if filter.Company == nil || *filter.Company != "goo" {
		t.Fatalf("company = %v", filter.Company)
	}
	if filter.MinPackage != nil || filter.MaxPackage != nil || filter.Selected != nil {
		t.Fatalf("malformed values kept: %+v", filter)
	}
	want := []string{"minPackage", "maxPackage", "selected"}
	if !equalIDs(dropped, want) {
		t.Fatalf("dropped = %v, want %v", dropped, want)
	}
}

func TestBuildExperienceFilterParsesValues(t *testing.T) {
	filter, dropped := BuildExperienceFilter(ExperienceQuery{
		Department: "CSE",
		Type:       "placement",
		MinPackage: "12.5",
		MaxPackage: "40",
		Selected:   "false",
	})
	if len(dropped) != 0 {
		t.Fatalf("dropped = %v", dropped)
	}
	if *filter.Department != "CSE" || string(*filter.Type) != "placement" {
		t.Fatalf("unexpected filter: %+v", filter)
	}
	if *filter.MinPackage != 12.5 || *filter.MaxPackage != 40 {
		t.Fatalf("bounds = %v, %v", *filter.MinPackage, *filter.MaxPackage)
	}
	if filter.Selected == nil || *filter.Selected {
		t.Fatal("selected=false must be kept as an explicit false")
	}
}

func TestBuildExperienceFilterEmptyQuery(t *testing.T) {
	filter, dropped := BuildExperienceFilter(ExperienceQuery{Company: "   "})
	if !filter.IsEmpty() || len(dropped) != 0 {
		t.Fatalf("expected empty filter, got %+v dropped=%v", filter, dropped)
	}
}

func TestBuildExperienceFilterFallsBackToLPAAliases(t *testing.T) {
	tests := []struct {
		name        string
		query       ExperienceQuery
		wantMin     *float64
		wantDropped []string
	}{
		{name: "alias alone", query: ExperienceQuery{MinLPA: "20"}, wantMin: ptr(20.0)},
		{name: "primary wins when valid", query: ExperienceQuery{MinPackage: "15", MinLPA: "20"}, wantMin: ptr(15.0)},
		{name: "malformed primary falls through", query: ExperienceQuery{MinPackage: "abc", MinLPA: "20"}, wantMin: ptr(20.0)},
		{name: "both malformed", query: ExperienceQuery{MinPackage: "abc", MinLPA: "xyz"}, wantDropped: []string{"minPackage"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			filter, dropped := BuildExperienceFilter(tc.query)
			switch {
			case tc.wantMin == nil && filter.MinPackage != nil:
				t.Fatalf("min = %v, want none", *filter.MinPackage)
			case tc.wantMin != nil && (filter.MinPackage == nil || *filter.MinPackage != *tc.wantMin):
				t.Fatalf("min = %v, want %v", filter.MinPackage, *tc.wantMin)
			}
			if !equalIDs(dropped, tc.wantDropped) {
				t.Fatalf("dropped = %v, want %v", dropped, tc.wantDropped)
			}
		})
	}
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/placement-portal/experience-service/internal/domain"
	"github.com/placement-portal/experience-service/internal/repository"
	apperrors "github.com/placement-portal/experience-service/pkg/util/errorutil"
)

func ptr[T any](v T) *T { return &v }

var baseTime = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// seedExperiences stores the two-record fixture used across these tests:
// record 1 is u1's selected Google placement at 30, record 2 is u2's
// unselected Startup internship without a package.
func seedExperiences(t *testing.T) (*repository.Store, *ExperienceService) {
	t.Helper()
	store := repository.NewMemoryStore()
	ctx := context.Background()
	seed := []domain.Experience{
		{ID: "1", UserID: "u1", Company: "Google", Type: domain.ExperienceTypePlacement, Package: ptr(30.0), GotSelected: ptr(true), CreatedAt: baseTime.Add(time.Hour)},
		{ID: "2", UserID: "u2", Company: "Startup", Type: domain.ExperienceTypeInternship, GotSelected: ptr(false), CreatedAt: baseTime},
	}
	for i := range seed {
		if err := store.Experiences.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	svc := NewExperienceService(ExperienceDependencies{ExperienceRepo: store.Experiences})
	return store, svc
}

func ids(items []domain.Experience) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func listIDs(t *testing.T, svc *ExperienceService, q ExperienceQuery) []string {
	t.Helper()
	filter, _ := BuildExperienceFilter(q)
	items, err := svc.ListExperiences(context.Background(), filter)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	return ids(items)
}

func TestListExperiencesFilters(t *testing.T) {
	_, svc := seedExperiences(t)

	tests := []struct {
		name  string
		query ExperienceQuery
		want  []string
	}{
		{name: "no filter newest first", query: ExperienceQuery{}, want: []string{"1", "2"}},
		{name: "company substring", query: ExperienceQuery{Company: "goo"}, want: []string{"1"}},
		{name: "min package excludes missing package", query: ExperienceQuery{MinPackage: "20"}, want: []string{"1"}},
		{name: "max package excludes missing package", query: ExperienceQuery{MaxPackage: "100"}, want: []string{"1"}},
		{name: "selected false", query: ExperienceQuery{Selected: "false"}, want: []string{"2"}},
		{name: "type internship", query: ExperienceQuery{Type: "internship"}, want: []string{"2"}},
		{name: "unknown type", query: ExperienceQuery{Type: "fulltime"}, want: []string{}},
		{name: "unparseable bound ignored", query: ExperienceQuery{MinPackage: "abc"}, want: []string{"1", "2"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := listIDs(t, svc, tc.query); !equalIDs(got, tc.want) {
				t.Fatalf("ids = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSelectedPartitionsRecordsWithOutcome(t *testing.T) {
	_, svc := seedExperiences(t)
	selected := listIDs(t, svc, ExperienceQuery{Selected: "true"})
	rejected := listIDs(t, svc, ExperienceQuery{Selected: "false"})
	all := listIDs(t, svc, ExperienceQuery{})

	union := map[string]bool{}
	for _, id := range append(selected, rejected...) {
		if union[id] {
			t.Fatalf("record %s matched both selected=true and selected=false", id)
		}
		union[id] = true
	}
	if len(union) != len(all) {
		t.Fatalf("selected ∪ rejected = %d records, unconstrained = %d", len(union), len(all))
	}
}

func TestDeleteExperienceOwnership(t *testing.T) {
	ctx := context.Background()
	_, svc := seedExperiences(t)

	_, err := svc.DeleteExperience(ctx, "u2", "1")
	if !apperrors.HasCode(err, apperrors.CodeForbidden) {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
	if got := listIDs(t, svc, ExperienceQuery{}); !equalIDs(got, []string{"1", "2"}) {
		t.Fatalf("forbidden delete changed the store: %v", got)
	}

	result, err := svc.DeleteExperience(ctx, "u1", "1")
	if err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if result.DeletedID != "1" {
		t.Fatalf("deleted id = %q", result.DeletedID)
	}
	if got := listIDs(t, svc, ExperienceQuery{}); !equalIDs(got, []string{"2"}) {
		t.Fatalf("after delete ids = %v", got)
	}

	_, err = svc.DeleteExperience(ctx, "u1", "1")
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND on repeated delete, got %v", err)
	}
}

func TestMissingRecordIsNotFoundForEveryCaller(t *testing.T) {
	ctx := context.Background()
	_, svc := seedExperiences(t)
	for _, actor := range []string{"u1", "u2", ""} {
		if _, err := svc.DeleteExperience(ctx, actor, "missing"); !apperrors.HasCode(err, apperrors.CodeNotFound) {
			t.Fatalf("actor %q: expected NOT_FOUND, got %v", actor, err)
		}
		if _, err := svc.UpdateExperience(ctx, actor, "missing", repository.ExperiencePatch{Role: ptr("x")}); !apperrors.HasCode(err, apperrors.CodeNotFound) {
			t.Fatalf("actor %q: expected NOT_FOUND on update, got %v", actor, err)
		}
	}
}

func TestUpdateExperienceOwnership(t *testing.T) {
	ctx := context.Background()
	_, svc := seedExperiences(t)

	_, err := svc.UpdateExperience(ctx, "u2", "1", repository.ExperiencePatch{Company: ptr("Hijacked")})
	if !apperrors.HasCode(err, apperrors.CodeForbidden) {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
	unchanged, err := svc.GetExperience(ctx, "1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if unchanged.Company != "Google" {
		t.Fatalf("company changed to %q after forbidden update", unchanged.Company)
	}

	updated, err := svc.UpdateExperience(ctx, " U1 ", "1", repository.ExperiencePatch{Role: ptr("  SWE ")})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Role != "SWE" || updated.Company != "Google" || updated.UserID != "u1" {
		t.Fatalf("unexpected update result: %+v", updated)
	}
}

func TestEmptyActorNeverOwns(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	orphan := domain.Experience{ID: "x", Company: "Acme", CreatedAt: baseTime}
	if err := store.Experiences.Create(ctx, &orphan); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := NewExperienceService(ExperienceDependencies{ExperienceRepo: store.Experiences})
	if _, err := svc.DeleteExperience(ctx, "", "x"); !apperrors.HasCode(err, apperrors.CodeForbidden) {
		t.Fatalf("expected FORBIDDEN for empty identities, got %v", err)
	}
}

func TestCreateExperienceValidation(t *testing.T) {
	ctx := context.Background()
	_, svc := seedExperiences(t)

	tests := []struct {
		name  string
		input ExperienceInput
	}{
		{name: "missing company", input: ExperienceInput{Company: "  "}},
		{name: "bad type", input: ExperienceInput{Company: "X", Type: "fulltime"}},
		{name: "negative package", input: ExperienceInput{Company: "X", Package: ptr(-1.0)}},
		{name: "difficulty out of range", input: ExperienceInput{Company: "X", DifficultyRating: ptr(6)}},
		{name: "cgpa out of range", input: ExperienceInput{Company: "X", CGPA: ptr(11.0)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateExperience(ctx, "u1", tc.input); !apperrors.HasCode(err, apperrors.CodeValidation) {
				t.Fatalf("expected VALIDATION_FAILED, got %v", err)
			}
		})
	}
}

func TestCreateExperienceStampsOwnerAndTime(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	now := baseTime.Add(24 * time.Hour)
	svc := NewExperienceService(ExperienceDependencies{
		ExperienceRepo: store.Experiences,
		Clock:          func() time.Time { return now },
	})

	exp, err := svc.CreateExperience(ctx, "u9", ExperienceInput{
		Company:   " Microsoft ",
		Type:      domain.ExperienceTypeInternship,
		Questions: []string{" two sum ", ""},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if exp.UserID != "u9" || exp.Company != "Microsoft" || !exp.CreatedAt.Equal(now) {
		t.Fatalf("unexpected record: %+v", exp)
	}
	if len(exp.Questions) != 1 || exp.Questions[0] != "two sum" {
		t.Fatalf("questions = %v", exp.Questions)
	}

	mine, err := svc.ListByOwner(ctx, "u9")
	if err != nil {
		t.Fatalf("list mine: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != exp.ID {
		t.Fatalf("list mine = %v", ids(mine))
	}
}

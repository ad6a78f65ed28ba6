package fetch

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Kurumilog/teletype-to-epub/links"
)

func TestBuildPlanPriority(t *testing.T) {
	index := links.Index{
		1: {"@a": "url1", "@b": "url2"},
		2: {"@b": "url3"},
	}

	plan, err := BuildPlan(index, []string{"@a", "@b"}, 1, 2)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	want := []PlanEntry{
		{Number: 1, URL: "url1"},
		{Number: 2, URL: "url3"},
	}
	if !reflect.DeepEqual(plan, want) {
		t.Errorf("BuildPlan() = %v, want %v", plan, want)
	}
}

func TestBuildPlanAbsentSource(t *testing.T) {
	index := links.Index{
		1: {"@a": "url1", "@b": "url2"},
		2: {"@b": "url3"},
	}

	_, err := BuildPlan(index, []string{"@c"}, 1, 2)

	var missing *MissingChaptersError
	if !errors.As(err, &missing) {
		t.Fatalf("BuildPlan() error = %v, want MissingChaptersError", err)
	}
	if want := []int{1, 2}; !reflect.DeepEqual(missing.Chapters, want) {
		t.Errorf("missing chapters = %v, want %v", missing.Chapters, want)
	}
}

func TestBuildPlanGapInRange(t *testing.T) {
	index := links.Index{
		5: {"@a": "url-a"},
		6: {"@b": "url-b"},
	}

	plan, err := BuildPlan(index, []string{"@a", "@b"}, 5, 6)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}
	want := []PlanEntry{
		{Number: 5, URL: "url-a"},
		{Number: 6, URL: "url-b"},
	}
	if !reflect.DeepEqual(plan, want) {
		t.Errorf("BuildPlan() = %v, want %v", plan, want)
	}

	_, err = BuildPlan(index, []string{"@a", "@b"}, 5, 7)
	var missing *MissingChaptersError
	if !errors.As(err, &missing) {
		t.Fatalf("BuildPlan() error = %v, want MissingChaptersError", err)
	}
	if want := []int{7}; !reflect.DeepEqual(missing.Chapters, want) {
		t.Errorf("missing chapters = %v, want %v", missing.Chapters, want)
	}
}

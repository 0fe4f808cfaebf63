package service

import (
	"testing"

	"github.com/Daina40/KadenaPrdn/internal/style/entity"
)

func TestIndexByProcessTrimsKeys(t *testing.T) {
	comments := []entity.Comment{
		{Process: "  Fabric issue  ", Text: "Shade variation on lot 3"},
		{Process: "Lab test", Text: "Passed"},
		{Process: "   ", Text: "should be skipped"},
	}

	idx := IndexByProcess(comments)
	if len(idx) != 2 {
		t.Fatalf("expected 2 indexed comments, got %d", len(idx))
	}
	if idx["Fabric issue"] != "Shade variation on lot 3" {
		t.Errorf("trimmed key lookup failed: %q", idx["Fabric issue"])
	}
}

func TestGetCommentMissingReturnsEmpty(t *testing.T) {
	idx := ProcessComments{"Fit sample": "Approved with remarks"}

	if got := GetComment(idx, "Fit sample"); got != "Approved with remarks" {
		t.Errorf("expected stored text, got %q", got)
	}
	if got := GetComment(idx, "  Fit sample "); got != "Approved with remarks" {
		t.Errorf("lookup should trim the process, got %q", got)
	}
	if got := GetComment(idx, "Shrinkage"); got != "" {
		t.Errorf("missing process must yield empty string, got %q", got)
	}
	if got := GetComment(nil, "Shrinkage"); got != "" {
		t.Errorf("nil map must yield empty string, got %q", got)
	}
}

func TestIndexByDescription(t *testing.T) {
	d1 := "desc-1"
	comments := []entity.Comment{
		{DescriptionID: &d1, Process: "Workmanship", Text: "Loose threads"},
		{DescriptionID: nil, Process: "Others", Text: "Legacy remark"},
	}

	idx := IndexByDescription(comments)
	if len(idx) != 2 {
		t.Fatalf("expected 2 description buckets, got %d", len(idx))
	}
	if idx["desc-1"]["Workmanship"] != "Loose threads" {
		t.Errorf("description bucket missing comment")
	}
	if idx[""]["Others"] != "Legacy remark" {
		t.Errorf("nil description should bucket under empty key")
	}
}

func TestGetCommentForDescriptionMissingReturnsEmptyMap(t *testing.T) {
	idx := IndexByDescription(nil)

	pc := GetCommentForDescription(idx, "nope")
	if pc == nil {
		t.Fatal("expected empty map, got nil")
	}
	if got := GetComment(pc, "Anything"); got != "" {
		t.Errorf("expected empty string from empty bucket, got %q", got)
	}
}

func TestResponsibleForProcess(t *testing.T) {
	cases := []struct {
		process string
		want    string
	}{
		{"Fabric issue", "APM"},
		{"Workmanship", "Technician"},
		{"Shade band", "TQS"},
		{"AQL audit", "QA"},
		{"Embroidery", "QC"}, // section name itself
		{"Something unknown", "APM"},
	}
	for _, c := range cases {
		if got := responsibleForProcess(c.process); got != c.want {
			t.Errorf("responsibleForProcess(%q) = %q, want %q", c.process, got, c.want)
		}
	}
}

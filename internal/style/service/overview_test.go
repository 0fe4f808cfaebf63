package service

import (
	"fmt"
	"testing"

	"github.com/Daina40/KadenaPrdn/internal/style/entity"
)

func overviewStyle(id, customer, styleNo string, mutate func(*entity.Style)) entity.Style {
	s := entity.Style{
		ID:             id,
		CustomerID:     "cust-" + customer,
		Customer:       &entity.Customer{ID: "cust-" + customer, Name: customer},
		Season:         "SS26",
		StyleNo:        styleNo,
		ProductionLine: "LINE-1",
		OrderQty:       100,
		APM:            "Alice",
		Technician:     "Bob",
		QC:             "Carol",
		QA:             "Dave",
		TQS:            "Eve",
		Source:         entity.SourceOverview,
	}
	if mutate != nil {
		mutate(&s)
	}
	return s
}

func TestBuildOverviewDeduplicatesRows(t *testing.T) {
	styles := []entity.Style{
		overviewStyle("s1", "ACME", "ST-001", nil),
		overviewStyle("s2", "ACME", "ST-001", nil), // identical tuple, collapses
		overviewStyle("s3", "ACME", "ST-001", func(s *entity.Style) {
			s.ProductionLine = "LINE-2"
		}),
	}

	groups := BuildOverview(styles)
	if len(groups) != 1 {
		t.Fatalf("expected 1 customer group, got %d", len(groups))
	}
	sg := groups[0].Styles[0]
	if len(sg.Rows) != 2 {
		t.Fatalf("expected 2 deduplicated rows, got %d", len(sg.Rows))
	}
	if sg.Rows[0].StyleID != "s1" {
		t.Errorf("first row should keep the first-seen style id, got %s", sg.Rows[0].StyleID)
	}
	if sg.Rows[1].ProductionLine != "LINE-2" {
		t.Errorf("second row should be the LINE-2 variant, got %s", sg.Rows[1].ProductionLine)
	}
}

func TestBuildOverviewOrderQtyNotPartOfRowKey(t *testing.T) {
	styles := []entity.Style{
		overviewStyle("s1", "ACME", "ST-001", nil),
		overviewStyle("s2", "ACME", "ST-001", func(s *entity.Style) {
			s.OrderQty = 999
		}),
	}

	groups := BuildOverview(styles)
	sg := groups[0].Styles[0]
	if len(sg.Rows) != 1 {
		t.Fatalf("quantity must not split rows, got %d rows", len(sg.Rows))
	}
	if sg.Rows[0].OrderQty != 100 {
		t.Errorf("first-seen row wins, got qty %d", sg.Rows[0].OrderQty)
	}
}

func TestBuildOverviewMergesDetailDescriptions(t *testing.T) {
	styles := []entity.Style{
		overviewStyle("s1", "ACME", "ST-001", func(s *entity.Style) {
			s.Descriptions = []entity.Description{
				{ID: "d1", StyleID: "s1", Text: "Crew neck tee"},
			}
		}),
		overviewStyle("s2", "ACME", "ST-001", func(s *entity.Style) {
			s.Source = entity.SourceDetail
			s.Descriptions = []entity.Description{
				{ID: "d2", StyleID: "s2", Text: "Crew neck tee"},   // duplicate text
				{ID: "d3", StyleID: "s2", Text: "Contrast collar"}, // new
			}
		}),
	}

	groups := BuildOverview(styles)
	sg := groups[0].Styles[0]
	if len(sg.Descriptions) != 2 {
		t.Fatalf("expected union of 2 descriptions, got %d", len(sg.Descriptions))
	}
	if sg.Descriptions[0].Text != "Crew neck tee" || sg.Descriptions[1].Text != "Contrast collar" {
		t.Errorf("unexpected description order: %+v", sg.Descriptions)
	}
	if sg.Descriptions[1].StyleID != "s2" {
		t.Errorf("merged description keeps its detail row owner, got %s", sg.Descriptions[1].StyleID)
	}
}

func TestBuildOverviewDetailRowsNotDisplayed(t *testing.T) {
	styles := []entity.Style{
		overviewStyle("s1", "ACME", "ST-001", func(s *entity.Style) {
			s.Source = entity.SourceDetail
		}),
	}

	groups := BuildOverview(styles)
	if len(groups) != 0 {
		t.Fatalf("detail-only styles should produce no overview groups, got %d", len(groups))
	}
}

func TestBuildOverviewRowspans(t *testing.T) {
	styles := []entity.Style{
		overviewStyle("s1", "ACME", "ST-001", nil),
		overviewStyle("s2", "ACME", "ST-001", func(s *entity.Style) { s.Season = "AW26" }),
		overviewStyle("s3", "ACME", "ST-002", nil),
		overviewStyle("s4", "BETA", "ST-010", nil),
	}

	groups := BuildOverview(styles)
	if len(groups) != 2 {
		t.Fatalf("expected 2 customer groups, got %d", len(groups))
	}

	acme := groups[0]
	if acme.Customer != "ACME" {
		t.Fatalf("first customer should be ACME (first seen), got %s", acme.Customer)
	}
	if acme.Styles[0].Rowspan != 2 || acme.Styles[1].Rowspan != 1 {
		t.Errorf("style rowspans wrong: %d, %d", acme.Styles[0].Rowspan, acme.Styles[1].Rowspan)
	}
	if acme.Rowspan != 3 {
		t.Errorf("customer rowspan should sum style rowspans, got %d", acme.Rowspan)
	}
	if groups[1].Rowspan != 1 {
		t.Errorf("BETA rowspan should be 1, got %d", groups[1].Rowspan)
	}
}

func TestBuildOverviewPreservesInsertionOrder(t *testing.T) {
	var styles []entity.Style
	for i := 0; i < 20; i++ {
		customer := fmt.Sprintf("CUST-%02d", 19-i)
		styles = append(styles, overviewStyle(fmt.Sprintf("s%d", i), customer, "ST-001", nil))
	}

	groups := BuildOverview(styles)
	if len(groups) != 20 {
		t.Fatalf("expected 20 customer groups, got %d", len(groups))
	}
	for i, g := range groups {
		want := fmt.Sprintf("CUST-%02d", 19-i)
		if g.Customer != want {
			t.Fatalf("group %d: expected %s (input order), got %s", i, want, g.Customer)
		}
	}
}

func TestBuildOverviewSameStyleNoDifferentCustomers(t *testing.T) {
	styles := []entity.Style{
		overviewStyle("s1", "ACME", "ST-001", nil),
		overviewStyle("s2", "BETA", "ST-001", nil),
	}

	groups := BuildOverview(styles)
	if len(groups) != 2 {
		t.Fatalf("same style no under different customers must not merge, got %d groups", len(groups))
	}
}

package service

import (
	"github.com/Daina40/KadenaPrdn/internal/style/entity"
)

// StyleRow is one deduplicated display row of the overview table. Rows with
// an identical attribute tuple under the same (customer, style no) collapse
// into one; StyleID keeps the first-seen row's id for edit/delete links.
type StyleRow struct {
	StyleID        string `json:"style_id"`
	Season         string `json:"season"`
	ProductionLine string `json:"production_line"`
	OrderQty       int    `json:"order_qty"`
	Program        string `json:"program"`
	APM            string `json:"apm"`
	Technician     string `json:"technician"`
	QC             string `json:"qc"`
	QA             string `json:"qa"`
	TQS            string `json:"tqs"`
}

// DescriptionView is one merged description line. StyleID identifies the row
// that contributed it, which may be a detail-sourced style.
type DescriptionView struct {
	ID      string `json:"id"`
	StyleID string `json:"style_id"`
	Text    string `json:"text"`
}

// StyleGroup groups one style number's deduplicated rows and descriptions.
type StyleGroup struct {
	StyleNo      string            `json:"style_no"`
	Rows         []StyleRow        `json:"rows"`
	Descriptions []DescriptionView `json:"descriptions"`
	Rowspan      int               `json:"rowspan"`
}

// CustomerGroup groups one customer's style groups. Rowspan is the total
// deduplicated row count across them, used for merged-cell spanning.
type CustomerGroup struct {
	Customer string        `json:"customer"`
	Styles   []*StyleGroup `json:"styles"`
	Rowspan  int           `json:"rowspan"`
}

// rowKey is the row deduplication tuple.
type rowKey struct {
	season     string
	line       string
	apm        string
	technician string
	qc         string
	qa         string
	tqs        string
}

type groupKey struct {
	customer string
	styleNo  string
}

type styleGroupBuilder struct {
	group    *StyleGroup
	rowSeen  map[rowKey]bool
	descSeen map[string]bool
}

func (b *styleGroupBuilder) addRow(s *entity.Style) {
	key := rowKey{
		season:     s.Season,
		line:       s.ProductionLine,
		apm:        s.APM,
		technician: s.Technician,
		qc:         s.QC,
		qa:         s.QA,
		tqs:        s.TQS,
	}
	if b.rowSeen[key] {
		return
	}
	b.rowSeen[key] = true
	b.group.Rows = append(b.group.Rows, StyleRow{
		StyleID:        s.ID,
		Season:         s.Season,
		ProductionLine: s.ProductionLine,
		OrderQty:       s.OrderQty,
		Program:        s.Program,
		APM:            s.APM,
		Technician:     s.Technician,
		QC:             s.QC,
		QA:             s.QA,
		TQS:            s.TQS,
	})
}

func (b *styleGroupBuilder) addDescription(d entity.Description) {
	if d.Text == "" || b.descSeen[d.Text] {
		return
	}
	b.descSeen[d.Text] = true
	b.group.Descriptions = append(b.group.Descriptions, DescriptionView{
		ID:      d.ID,
		StyleID: d.StyleID,
		Text:    d.Text,
	})
}

// BuildOverview builds the customer → style number → rows/descriptions view
// from flat style rows. Input order is preserved: grouping inserts into
// order-preserving structures and never resorts, so output is deterministic
// for a given query ordering.
//
// Only overview-sourced rows are displayed, but descriptions are the union,
// deduplicated by text, of the overview rows' own descriptions plus those of
// any detail-sourced row sharing the style number. A later detailed review
// feeds its description back into the overview list.
func BuildOverview(styles []entity.Style) []CustomerGroup {
	var customers []*CustomerGroup
	customerIdx := make(map[string]*CustomerGroup)
	builders := make(map[groupKey]*styleGroupBuilder)

	for i := range styles {
		s := &styles[i]
		if s.Source != entity.SourceOverview {
			continue
		}
		name := customerName(s)

		cg, ok := customerIdx[name]
		if !ok {
			cg = &CustomerGroup{Customer: name}
			customerIdx[name] = cg
			customers = append(customers, cg)
		}

		gk := groupKey{customer: name, styleNo: s.StyleNo}
		b, ok := builders[gk]
		if !ok {
			b = &styleGroupBuilder{
				group:    &StyleGroup{StyleNo: s.StyleNo},
				rowSeen:  make(map[rowKey]bool),
				descSeen: make(map[string]bool),
			}
			builders[gk] = b
			cg.Styles = append(cg.Styles, b.group)
		}

		b.addRow(s)
		for _, d := range s.Descriptions {
			b.addDescription(d)
		}
	}

	// Second pass: detail rows are not displayed here, but their descriptions
	// merge into the matching style group.
	for i := range styles {
		s := &styles[i]
		if s.Source != entity.SourceDetail {
			continue
		}
		b, ok := builders[groupKey{customer: customerName(s), styleNo: s.StyleNo}]
		if !ok {
			continue
		}
		for _, d := range s.Descriptions {
			b.addDescription(d)
		}
	}

	result := make([]CustomerGroup, 0, len(customers))
	for _, cg := range customers {
		total := 0
		for _, sg := range cg.Styles {
			sg.Rowspan = len(sg.Rows)
			total += sg.Rowspan
		}
		cg.Rowspan = total
		result = append(result, *cg)
	}
	return result
}

func customerName(s *entity.Style) string {
	if s.Customer != nil {
		return s.Customer.Name
	}
	return s.CustomerID
}

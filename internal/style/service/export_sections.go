package service

import "strings"

// reportSection is one block of the style summary report. Sections with a
// single unnamed process render their comment against the section name
// itself.
type reportSection struct {
	Name        string
	Responsible string
	Processes   []string
	RowHeight   float64
}

// reportSections is the fixed section layout of the summary workbook, in
// print order. RowHeight is only set where the section text tends to wrap.
var reportSections = []reportSection{
	{Name: "Material Concerns (SMS)", Responsible: "APM", Processes: []string{"Fabric issue", "Trims issue", "Lab test"}, RowHeight: 30},
	{Name: "Pattern & Fit", Responsible: "Technician", Processes: []string{"Fit sample", "Pattern review"}},
	{Name: "Cutting", Responsible: "Technician", Processes: []string{"Marker & lay", "Fusing", "Panel check"}},
	{Name: "Embroidery", Responsible: "QC", Processes: []string{""}},
	{Name: "Printing", Responsible: "QC", Processes: []string{"Placement", "Color fastness"}},
	{Name: "Logo Application", Responsible: "QC", Processes: []string{"Heat seal", "Position & alignment"}, RowHeight: 30},
	{Name: "Sewing", Responsible: "Technician", Processes: []string{"Needle & stitch", "Seam strength", "Workmanship"}, RowHeight: 30},
	{Name: "Washing", Responsible: "TQS", Processes: []string{"Shade band", "Shrinkage"}},
	{Name: "Finishing & Pressing", Responsible: "QA", Processes: []string{"Pressing standard", "Measurement"}},
	{Name: "Packing", Responsible: "QA", Processes: []string{"Folding & polybag", "Carton marking"}},
	{Name: "Final Inspection", Responsible: "QA", Processes: []string{"AQL audit"}},
	{Name: "Others", Responsible: "APM", Processes: []string{""}},
}

// commentKey is the process name a section row stores its comment under. An
// unnamed process falls back to the section name.
func (s reportSection) commentKey(process string) string {
	if strings.TrimSpace(process) == "" {
		return s.Name
	}
	return process
}

// responsibleForProcess resolves the section owner of a process name, used
// to default a new comment's responsible role. Unknown processes belong to
// the catch-all Others section.
func responsibleForProcess(process string) string {
	process = strings.TrimSpace(process)
	for _, section := range reportSections {
		if strings.EqualFold(section.Name, process) {
			return section.Responsible
		}
		for _, p := range section.Processes {
			if p != "" && strings.EqualFold(p, process) {
				return section.Responsible
			}
		}
	}
	return "APM"
}

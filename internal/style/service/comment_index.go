package service

import (
	"strings"

	"github.com/Daina40/KadenaPrdn/internal/style/entity"
)

// ProcessComments maps a trimmed process name to comment text.
type ProcessComments map[string]string

// IndexByProcess builds the flat process → text lookup for one style. The
// first comment seen for a process wins; the upsert key already guarantees
// one comment per (style, description, process).
func IndexByProcess(comments []entity.Comment) ProcessComments {
	idx := make(ProcessComments, len(comments))
	for _, c := range comments {
		process := strings.TrimSpace(c.Process)
		if process == "" {
			continue
		}
		if _, ok := idx[process]; !ok {
			idx[process] = c.Text
		}
	}
	return idx
}

// IndexByDescription builds the two-level description id → process → text
// lookup. Comments without a description (legacy rows) index under the empty
// string key.
func IndexByDescription(comments []entity.Comment) map[string]ProcessComments {
	idx := make(map[string]ProcessComments)
	for _, c := range comments {
		process := strings.TrimSpace(c.Process)
		if process == "" {
			continue
		}
		descID := ""
		if c.DescriptionID != nil {
			descID = *c.DescriptionID
		}
		pc, ok := idx[descID]
		if !ok {
			pc = make(ProcessComments)
			idx[descID] = pc
		}
		pc[process] = c.Text
	}
	return idx
}

// GetComment looks a process up in a comment map, trimming the key. Missing
// entries render as an empty string, never an error. Exposed to the template
// layer as a lookup helper.
func GetComment(comments ProcessComments, process string) string {
	if comments == nil {
		return ""
	}
	return comments[strings.TrimSpace(process)]
}

// GetCommentForDescription returns the process map for one description, or an
// empty map when the description has no comments yet.
func GetCommentForDescription(idx map[string]ProcessComments, descriptionID string) ProcessComments {
	if pc, ok := idx[descriptionID]; ok {
		return pc
	}
	return ProcessComments{}
}

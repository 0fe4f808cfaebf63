package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Daina40/KadenaPrdn/internal/style/entity"
	"github.com/Daina40/KadenaPrdn/internal/style/repository"
	"github.com/Daina40/KadenaPrdn/internal/style/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

const (
	filtersCacheKey = "styleinfo:summary_filters"
	filtersCacheTTL = 5 * time.Minute
)

// StyleService owns the style lifecycle: quick-add overview rows, the grouped
// overview, in-place detail edits, the overview→detail promotion and the
// cascading delete.
type StyleService struct {
	db    *gorm.DB
	repos *repository.Repositories
	rdb   *redis.Client
	store storage.ObjectStore
}

func NewStyleService(db *gorm.DB, repos *repository.Repositories, rdb *redis.Client, store storage.ObjectStore) *StyleService {
	return &StyleService{db: db, repos: repos, rdb: rdb, store: store}
}

var roleCaser = cases.Title(language.English)

// upperValue normalizes customer/season/style/line values the way the intake
// form always has: trimmed and upper-cased.
func upperValue(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// personName normalizes role assignments (APM, technician, QC, QA, TQS) to
// title case.
func personName(s string) string {
	return roleCaser.String(strings.ToLower(strings.TrimSpace(s)))
}

// CreateStyleInput is the quick-add form payload.
type CreateStyleInput struct {
	CustomerName   string `json:"customer_name" binding:"required"`
	Season         string `json:"season"`
	StyleNo        string `json:"style_no"`
	Program        string `json:"program"`
	ProductionLine string `json:"production_line"`
	OrderQty       int    `json:"order_qty"`
	APM            string `json:"apm"`
	Technician     string `json:"technician"`
	QC             string `json:"qc"`
	QA             string `json:"qa"`
	TQS            string `json:"tqs"`
	Description    string `json:"description"`
}

// Create adds an overview style, get-or-creating its customer by normalized
// name.
func (s *StyleService) Create(ctx context.Context, input *CreateStyleInput) (*entity.Style, error) {
	name := upperValue(input.CustomerName)
	if name == "" {
		return nil, &ValidationError{Field: "customer_name", Reason: "must not be blank"}
	}
	if input.OrderQty < 0 {
		return nil, &ValidationError{Field: "order_qty", Reason: "must not be negative"}
	}

	customer, err := s.repos.Customer.GetOrCreateByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get or create customer: %w", err)
	}

	now := time.Now()
	style := &entity.Style{
		ID:             uuid.New().String()[:32],
		CustomerID:     customer.ID,
		Season:         upperValue(input.Season),
		StyleNo:        upperValue(input.StyleNo),
		Program:        strings.TrimSpace(input.Program),
		ProductionLine: upperValue(input.ProductionLine),
		OrderQty:       input.OrderQty,
		APM:            personName(input.APM),
		Technician:     personName(input.Technician),
		QC:             personName(input.QC),
		QA:             personName(input.QA),
		TQS:            personName(input.TQS),
		Source:         entity.SourceOverview,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repos.Style.Create(ctx, style); err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}

	if text := strings.TrimSpace(input.Description); text != "" {
		desc := &entity.Description{
			ID:        uuid.New().String()[:32],
			StyleID:   style.ID,
			Text:      text,
			CreatedAt: now,
		}
		if err := s.repos.Description.Create(ctx, desc); err != nil {
			return nil, fmt.Errorf("create description: %w", err)
		}
		style.Descriptions = append(style.Descriptions, *desc)
	}

	style.Customer = customer
	s.invalidateFilters(ctx)
	return style, nil
}

// Get loads one style with descriptions, comments and images preloaded.
func (s *StyleService) Get(ctx context.Context, id string) (*entity.Style, error) {
	return s.repos.Style.FindByID(ctx, id)
}

// Overview returns the grouped overview view over all style rows.
func (s *StyleService) Overview(ctx context.Context) ([]CustomerGroup, error) {
	styles, err := s.repos.Style.ListWithRelations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list styles: %w", err)
	}
	return BuildOverview(styles), nil
}

// ListDetail returns the detail-sourced styles in creation order.
func (s *StyleService) ListDetail(ctx context.Context) ([]entity.Style, error) {
	return s.repos.Style.ListBySource(ctx, entity.SourceDetail)
}

// UpdateStyleInput carries in-place edits to a detail style. Blank fields are
// left unchanged.
type UpdateStyleInput struct {
	Season         string `json:"season"`
	Program        string `json:"program"`
	ProductionLine string `json:"production_line"`
	OrderQty       *int   `json:"order_qty"`
	APM            string `json:"apm"`
	Technician     string `json:"technician"`
	QC             string `json:"qc"`
	QA             string `json:"qa"`
	TQS            string `json:"tqs"`
}

// Update edits a style row in place.
func (s *StyleService) Update(ctx context.Context, id string, input *UpdateStyleInput) (*entity.Style, error) {
	style, err := s.repos.Style.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.OrderQty != nil {
		if *input.OrderQty <= 0 {
			return nil, &ValidationError{Field: "order_qty", Reason: "must be a positive number"}
		}
		style.OrderQty = *input.OrderQty
	}
	if input.Season != "" {
		style.Season = upperValue(input.Season)
	}
	if input.Program != "" {
		style.Program = strings.TrimSpace(input.Program)
	}
	if input.ProductionLine != "" {
		style.ProductionLine = upperValue(input.ProductionLine)
	}
	if input.APM != "" {
		style.APM = personName(input.APM)
	}
	if input.Technician != "" {
		style.Technician = personName(input.Technician)
	}
	if input.QC != "" {
		style.QC = personName(input.QC)
	}
	if input.QA != "" {
		style.QA = personName(input.QA)
	}
	if input.TQS != "" {
		style.TQS = personName(input.TQS)
	}
	style.UpdatedAt = time.Now()

	if err := s.repos.Style.Update(ctx, style); err != nil {
		return nil, fmt.Errorf("update style: %w", err)
	}
	s.invalidateFilters(ctx)
	return style, nil
}

// Delete removes a style and everything hanging off it. Blobs whose object
// key is no longer referenced by any image row are removed best-effort.
func (s *StyleService) Delete(ctx context.Context, id string) error {
	images, err := s.repos.Image.ListByStyle(ctx, id)
	if err != nil {
		return fmt.Errorf("list images: %w", err)
	}

	if err := s.repos.Style.Delete(ctx, id); err != nil {
		return err
	}

	if s.store != nil {
		for _, img := range images {
			if img.ObjectKey == "" {
				continue
			}
			remaining, err := s.repos.Image.CountByObjectKey(ctx, img.ObjectKey)
			if err == nil && remaining == 0 {
				s.store.Delete(ctx, img.ObjectKey)
			}
		}
	}

	s.invalidateFilters(ctx)
	return nil
}

// AddDescription appends a description line to a style.
func (s *StyleService) AddDescription(ctx context.Context, styleID, text string) (*entity.Description, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ValidationError{Field: "text", Reason: "must not be blank"}
	}
	if _, err := s.repos.Style.FindByID(ctx, styleID); err != nil {
		return nil, err
	}
	desc := &entity.Description{
		ID:        uuid.New().String()[:32],
		StyleID:   styleID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := s.repos.Description.Create(ctx, desc); err != nil {
		return nil, fmt.Errorf("create description: %w", err)
	}
	return desc, nil
}

// DeleteDescription removes one description line with its comments and images.
func (s *StyleService) DeleteDescription(ctx context.Context, id string) error {
	return s.repos.Description.Delete(ctx, id)
}

// PromoteInput carries the detail-review fields. OrderQty arrives as the raw
// form string because the review form historically posted it unparsed; it is
// validated before anything is written.
type PromoteInput struct {
	Season         string `json:"season"`
	Program        string `json:"program"`
	ProductionLine string `json:"production_line"`
	OrderQty       string `json:"order_qty"`
	APM            string `json:"apm"`
	Technician     string `json:"technician"`
	QC             string `json:"qc"`
	QA             string `json:"qa"`
	TQS            string `json:"tqs"`
}

// Promote clones an overview style into a new detail-sourced row: the style
// itself, its descriptions (with identifiers remapped), their images and its
// comments. The whole copy runs in one transaction; any dependent failure
// rolls everything back and surfaces as a single CloneError. The original row
// is never touched.
func (s *StyleService) Promote(ctx context.Context, styleID string, input *PromoteInput) (*entity.Style, error) {
	// Validate before creating anything.
	qty, err := strconv.Atoi(strings.TrimSpace(input.OrderQty))
	if err != nil {
		return nil, &ValidationError{Field: "order_qty", Reason: "must be a number"}
	}
	if qty <= 0 {
		return nil, &ValidationError{Field: "order_qty", Reason: "must be a positive number"}
	}

	original, err := s.repos.Style.FindByID(ctx, styleID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	clone := &entity.Style{
		ID:             uuid.New().String()[:32],
		CustomerID:     original.CustomerID,
		StyleNo:        original.StyleNo,
		Season:         override(upperValue(input.Season), original.Season),
		Program:        override(strings.TrimSpace(input.Program), original.Program),
		ProductionLine: override(upperValue(input.ProductionLine), original.ProductionLine),
		OrderQty:       qty,
		APM:            override(personName(input.APM), original.APM),
		Technician:     override(personName(input.Technician), original.Technician),
		QC:             override(personName(input.QC), original.QC),
		QA:             override(personName(input.QA), original.QA),
		TQS:            override(personName(input.TQS), original.TQS),
		Source:         entity.SourceDetail,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(clone).Error; err != nil {
			return fmt.Errorf("create clone: %w", err)
		}

		// Copy descriptions, recording old id → new id.
		descMap := make(map[string]string, len(original.Descriptions))
		for _, d := range original.Descriptions {
			copied := entity.Description{
				ID:        uuid.New().String()[:32],
				StyleID:   clone.ID,
				Text:      d.Text,
				CreatedAt: now,
			}
			if err := tx.Create(&copied).Error; err != nil {
				return fmt.Errorf("copy description: %w", err)
			}
			descMap[d.ID] = copied.ID
		}

		// Copy images onto the mapped descriptions. Rows with a blank object
		// key or an owner outside the original style are corrupt leftovers;
		// they are excluded, not errors.
		for _, img := range original.Images {
			if img.ObjectKey == "" || img.StyleID != original.ID {
				continue
			}
			newDescID, ok := descMap[img.DescriptionID]
			if !ok {
				continue
			}
			copied := entity.Image{
				ID:            uuid.New().String()[:32],
				StyleID:       clone.ID,
				DescriptionID: newDescID,
				Name:          img.Name,
				ObjectKey:     img.ObjectKey,
				ContentType:   img.ContentType,
				Size:          img.Size,
				CreatedAt:     now,
			}
			if err := tx.Create(&copied).Error; err != nil {
				return fmt.Errorf("copy image: %w", err)
			}
		}

		// Copy comments, remapping their description references.
		for _, c := range original.Comments {
			var newDescID *string
			if c.DescriptionID != nil {
				if mapped, ok := descMap[*c.DescriptionID]; ok {
					newDescID = &mapped
				}
			}
			copied := entity.Comment{
				ID:            uuid.New().String()[:32],
				StyleID:       clone.ID,
				DescriptionID: newDescID,
				Process:       c.Process,
				Responsible:   c.Responsible,
				Text:          c.Text,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := tx.Create(&copied).Error; err != nil {
				return fmt.Errorf("copy comment: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, &CloneError{StyleID: styleID, Err: err}
	}

	s.invalidateFilters(ctx)
	return s.repos.Style.FindByID(ctx, clone.ID)
}

func override(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

// SummaryFilters holds the distinct dropdown values of the summary page.
type SummaryFilters struct {
	Customers   []string `json:"customers"`
	Seasons     []string `json:"seasons"`
	StyleNos    []string `json:"style_nos"`
	Lines       []string `json:"lines"`
	APMs        []string `json:"apms"`
	Technicians []string `json:"technicians"`
	QCs         []string `json:"qcs"`
	QAs         []string `json:"qas"`
	TQSs        []string `json:"tqss"`
}

// Filters returns the distinct filter values, cached in redis for a few
// minutes and invalidated on every style write.
func (s *StyleService) Filters(ctx context.Context) (*SummaryFilters, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, filtersCacheKey).Result(); err == nil {
			var filters SummaryFilters
			if err := json.Unmarshal([]byte(cached), &filters); err == nil {
				return &filters, nil
			}
		}
	}

	filters := &SummaryFilters{}
	var err error
	if filters.Customers, err = s.repos.Style.DistinctCustomerNames(ctx); err != nil {
		return nil, fmt.Errorf("distinct customers: %w", err)
	}
	columns := []struct {
		name string
		dst  *[]string
	}{
		{"season", &filters.Seasons},
		{"style_no", &filters.StyleNos},
		{"production_line", &filters.Lines},
		{"apm", &filters.APMs},
		{"technician", &filters.Technicians},
		{"qc", &filters.QCs},
		{"qa", &filters.QAs},
		{"tqs", &filters.TQSs},
	}
	for _, col := range columns {
		if *col.dst, err = s.repos.Style.DistinctValues(ctx, col.name); err != nil {
			return nil, fmt.Errorf("distinct %s: %w", col.name, err)
		}
	}

	if s.rdb != nil {
		if data, err := json.Marshal(filters); err == nil {
			s.rdb.Set(ctx, filtersCacheKey, data, filtersCacheTTL)
		}
	}
	return filters, nil
}

func (s *StyleService) invalidateFilters(ctx context.Context) {
	if s.rdb != nil {
		s.rdb.Del(ctx, filtersCacheKey)
	}
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"github.com/cromos/ballpark/internal/calculator"
	"github.com/cromos/ballpark/internal/model"
	"github.com/cromos/ballpark/internal/rates"
)

type ReportGenerator interface {
	Generate(report model.EstimateReport) ([]byte, error)
}

type EstimateService struct {
	calc  *calculator.Calculator
	cache *lru.Cache[string, *model.Estimate]
	excel ReportGenerator
	pdf   ReportGenerator
	log   zerolog.Logger
	now   func() time.Time
}

type ExportResult struct {
	FileName    string
	ContentType string
	Content     []byte
}

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
)

// NewEstimateService memoizes up to cacheSize estimates; zero disables the cache.
func NewEstimateService(calc *calculator.Calculator, excel, pdf ReportGenerator, cacheSize int, log zerolog.Logger) (*EstimateService, error) {
	s := &EstimateService{
		calc:  calc,
		excel: excel,
		pdf:   pdf,
		log:   log,
		now:   time.Now,
	}
	if cacheSize > 0 {
		cache, err := lru.New[string, *model.Estimate](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create estimate cache: %w", err)
		}
		s.cache = cache
	}
	return s, nil
}

func (s *EstimateService) RateCard() *rates.Table {
	return s.calc.Table()
}

// Calculate prices the request. Estimates handed out by the cache are shared
// and must be treated as read-only.
func (s *EstimateService) Calculate(ctx context.Context, req EstimateRequest) (*model.Estimate, error) {
	estimate, _, err := s.estimate(ctx, req)
	return estimate, err
}

func (s *EstimateService) ExportXLSX(ctx context.Context, req EstimateRequest) (*ExportResult, error) {
	return s.export(ctx, req, s.excel, "xlsx", ContentTypeXLSX)
}

func (s *EstimateService) ExportPDF(ctx context.Context, req EstimateRequest) (*ExportResult, error) {
	return s.export(ctx, req, s.pdf, "pdf", ContentTypePDF)
}

func (s *EstimateService) export(ctx context.Context, req EstimateRequest, gen ReportGenerator, ext, contentType string) (*ExportResult, error) {
	if gen == nil {
		return nil, fmt.Errorf("%w: %s export is not configured", ErrConfiguration, ext)
	}

	estimate, project, err := s.estimate(ctx, req)
	if err != nil {
		return nil, err
	}

	table := s.calc.Table()
	report := model.EstimateReport{
		ID:              uuid.New(),
		GeneratedAt:     s.now().UTC(),
		RateCardVersion: table.Version(),
		Currency:        table.Currency(),
		Project:         model.SummarizeProject(project),
		Estimate:        estimate,
	}

	content, err := gen.Generate(report)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", ext, err)
	}

	return &ExportResult{
		FileName:    buildFileName(report, ext),
		ContentType: contentType,
		Content:     content,
	}, nil
}

func (s *EstimateService) estimate(ctx context.Context, req EstimateRequest) (*model.Estimate, *model.ProjectInput, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	project, err := req.Project()
	if err != nil {
		return nil, nil, err
	}

	key, err := cacheKey(project)
	if err != nil {
		return nil, nil, err
	}
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			s.log.Debug().Int("sites", project.TotalSites()).Msg("estimate cache hit")
			return cached, project, nil
		}
	}

	estimate, err := s.calc.Calculate(project)
	if err != nil {
		switch {
		case errors.Is(err, calculator.ErrInvalidProject):
			return nil, nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		case errors.Is(err, rates.ErrMissingRate):
			s.log.Error().Err(err).Msg("rate card cannot price request")
			return nil, nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		default:
			return nil, nil, err
		}
	}

	if s.cache != nil {
		s.cache.Add(key, estimate)
	}
	return estimate, project, nil
}

type cacheCountry struct {
	Region                 model.Region `json:"r"`
	Sites                  int          `json:"s"`
	Patients               int          `json:"p"`
	MonitoringVisitsOnsite int          `json:"mo"`
	MonitoringVisitsRemote int          `json:"mr"`
	UnblindedVisits        int          `json:"u"`
	Jurisdictions          int          `json:"j"`
}

// cacheKey identifies a project by the values the calculator reads, so that
// aliases and omitted defaults share an entry with their canonical form.
func cacheKey(p *model.ProjectInput) (string, error) {
	countries := make([]cacheCountry, 0, len(p.Countries()))
	for _, c := range p.Countries() {
		countries = append(countries, cacheCountry{
			Region:                 c.Country,
			Sites:                  c.Sites,
			Patients:               c.Patients,
			MonitoringVisitsOnsite: c.MonitoringVisitsOnsite,
			MonitoringVisitsRemote: c.MonitoringVisitsRemote,
			UnblindedVisits:        c.UnblindedVisits,
			Jurisdictions:          c.Jurisdictions(),
		})
	}

	raw, err := json.Marshal(struct {
		Enrollment    int             `json:"e"`
		Treatment     int             `json:"t"`
		Followup      int             `json:"f"`
		Qualification model.VisitType `json:"qv"`
		Initiation    model.VisitType `json:"iv"`
		Closeout      model.VisitType `json:"cv"`
		SAERate       float64         `json:"sae"`
		SUSARsWeeks   int             `json:"sw"`
		Vendors       int             `json:"v"`
		Grant         *float64        `json:"g"`
		Countries     []cacheCountry  `json:"c"`
	}{
		Enrollment:    p.EnrollmentMonths,
		Treatment:     p.TreatmentMonths,
		Followup:      p.FollowupMonths,
		Qualification: p.QualificationVisitType,
		Initiation:    p.InitiationVisitType,
		Closeout:      p.CloseoutVisitType,
		SAERate:       p.SAERate,
		SUSARsWeeks:   p.SUSARsWeeks,
		Vendors:       p.Vendors,
		Grant:         p.InvestigatorGrantPerPatient,
		Countries:     countries,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build cache key: %w", err)
	}
	return string(raw), nil
}

func buildFileName(report model.EstimateReport, ext string) string {
	return fmt.Sprintf("ballpark-%s-%s.%s", report.GeneratedAt.Format("20060102"), report.ID.String()[:8], ext)
}

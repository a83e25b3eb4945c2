package assessment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReportService defines the interface for practitioner reports.
type ReportService interface {
	BuildPDF(rec Record) ([]byte, error)
	SendPractitionerReport(ctx context.Context, rec Record) error
}

type Service interface {
	Assess(ctx context.Context, req Request) (*Record, error)
	AssessTongue(ctx context.Context, imageBase64 string, req Request) (*Record, error)
	GetAssessment(ctx context.Context, id uuid.UUID) (*Record, error)
	ListAssessments(ctx context.Context) ([]Record, error)
	BuildReport(ctx context.Context, id uuid.UUID) ([]byte, error)
}

type service struct {
	repo      Repository
	gen       Generator
	reportSvc ReportService
	logger    *zap.Logger
}

// NewService wires the pipeline dependencies. repo may be nil, in which
// case assessments are not persisted and the history endpoints report an
// error.
func NewService(repo Repository, gen Generator, report ReportService, logger *zap.Logger) Service {
	return &service{
		repo:      repo,
		gen:       gen,
		reportSvc: report,
		logger:    logger,
	}
}

// Assess runs the text pipeline: symptom -> dosha -> guidance -> safety.
func (s *service) Assess(ctx context.Context, req Request) (*Record, error) {
	req.applyDefaults()
	rec := &Record{ID: uuid.New(), Request: req, CreatedAt: time.Now()}

	pipe := Pipeline{symptomStep{}, doshaStep{}, guidanceStep{s.gen}, safetyStep{}}
	rec.Pipeline = pipe.String()
	if err := pipe.Run(ctx, rec); err != nil {
		return nil, err
	}

	s.finish(rec)
	return rec, nil
}

// AssessTongue runs the multimodal pipeline, prepending the tongue
// examination: vision -> symptom -> dosha -> guidance -> safety.
func (s *service) AssessTongue(ctx context.Context, imageBase64 string, req Request) (*Record, error) {
	req.applyDefaults()
	req.Symptoms = req.Symptoms + " — Tongue Darshan analysis: visual examination performed"
	rec := &Record{
		ID:                uuid.New(),
		Request:           req,
		TongueImageBase64: imageBase64,
		CreatedAt:         time.Now(),
	}

	pipe := Pipeline{visionStep{s.gen}, symptomStep{}, doshaStep{}, guidanceStep{s.gen}, safetyStep{}}
	rec.Pipeline = pipe.String()
	if err := pipe.Run(ctx, rec); err != nil {
		return nil, err
	}

	s.finish(rec)
	return rec, nil
}

// finish persists the completed record and hands it to the practitioner
// report channel. Neither failure reaches the patient response.
func (s *service) finish(rec *Record) {
	if s.repo != nil {
		if err := s.repo.Save(context.Background(), rec); err != nil {
			s.logger.Warn("failed to persist assessment",
				zap.String("id", rec.ID.String()), zap.Error(err))
		}
	}
	if s.reportSvc != nil {
		go func(r Record) {
			if err := s.reportSvc.SendPractitionerReport(context.Background(), r); err != nil {
				s.logger.Warn("failed to send practitioner report",
					zap.String("id", r.ID.String()), zap.Error(err))
			}
		}(*rec)
	}
}

func (s *service) GetAssessment(ctx context.Context, id uuid.UUID) (*Record, error) {
	if s.repo == nil {
		return nil, ErrStoreDisabled
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListAssessments(ctx context.Context) ([]Record, error) {
	if s.repo == nil {
		return nil, ErrStoreDisabled
	}
	return s.repo.ListRecent(ctx, 50)
}

func (s *service) BuildReport(ctx context.Context, id uuid.UUID) ([]byte, error) {
	if s.reportSvc == nil {
		return nil, errors.New("report service not configured")
	}
	rec, err := s.GetAssessment(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.reportSvc.BuildPDF(*rec)
}

package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/signintech/gopdf"
	"go.uber.org/zap"

	"ayurveda-ai/internal/assessment"
	"ayurveda-ai/internal/dosha"
)

type TelegramClient interface {
	SendMessage(chatID int64, text string) error
	SendDocument(chatID int64, fileData []byte, fileName string) error
}

// Service builds PDF assessment reports and, when a Telegram client and
// practitioner chat are configured, forwards them to the practitioner.
type Service struct {
	tgClient           TelegramClient
	practitionerChatID int64
	logger             *zap.Logger
}

func NewService(tg TelegramClient, practitionerChatID int64, logger *zap.Logger) *Service {
	return &Service{
		tgClient:           tg,
		practitionerChatID: practitionerChatID,
		logger:             logger,
	}
}

// SendPractitionerReport builds the PDF and sends it as a Telegram
// document. It is a no-op when notifications are not configured.
func (s *Service) SendPractitionerReport(ctx context.Context, rec assessment.Record) error {
	if s.tgClient == nil || s.practitionerChatID == 0 {
		return nil
	}

	s.logger.Info("generating practitioner report", zap.String("id", rec.ID.String()))
	data, err := s.BuildPDF(rec)
	if err != nil {
		return err
	}

	summary := fmt.Sprintf("New assessment %s: %s imbalance (%s). Report attached.",
		rec.ID, rec.Primary, rec.Disease)
	if err := s.tgClient.SendMessage(s.practitionerChatID, summary); err != nil {
		s.logger.Warn("failed to send report summary message", zap.Error(err))
	}

	fileName := fmt.Sprintf("assessment_%s.pdf", rec.ID.String())
	if err := s.tgClient.SendDocument(s.practitionerChatID, data, fileName); err != nil {
		return fmt.Errorf("failed to send report document: %w", err)
	}
	return nil
}

// BuildPDF renders the assessment as a single-page PDF report.
func (s *Service) BuildPDF(rec assessment.Record) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	// Try multiple common DejaVu font paths (Alpine, Debian).
	fontPaths := []string{
		"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	}

	var fontErr error
	fontLoaded := false
	for _, path := range fontPaths {
		if err := pdf.AddTTFFont("DejaVu", path); err == nil {
			fontLoaded = true
			break
		} else {
			fontErr = err
		}
	}
	if !fontLoaded {
		return nil, fmt.Errorf("failed to load font for PDF, ensure ttf-dejavu is installed: %w", fontErr)
	}

	if err := pdf.SetFont("DejaVu", "", 20); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Ayurvedic Assessment Report")
	pdf.Br(30)

	if err := pdf.SetFont("DejaVu", "", 12); err != nil {
		return nil, err
	}
	pdf.Cell(nil, fmt.Sprintf("Date: %s", rec.CreatedAt.Format("02.01.2006 15:04")))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("Assessment ID: %s", rec.ID))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("Chief Complaint: %s", rec.Disease))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("Age Group: %s    Gender: %s", rec.AgeGroup, rec.Gender))
	pdf.Br(25)

	if err := pdf.SetFont("DejaVu", "", 14); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Constitution Analysis:")
	pdf.Br(15)

	if err := pdf.SetFont("DejaVu", "", 11); err != nil {
		return nil, err
	}
	pdf.Cell(nil, fmt.Sprintf("- Dosha Scores: Vata=%d Pitta=%d Kapha=%d",
		rec.Scores[dosha.Vata], rec.Scores[dosha.Pitta], rec.Scores[dosha.Kapha]))
	pdf.Br(12)
	pdf.Cell(nil, fmt.Sprintf("- Primary Imbalance: %s", rec.Primary))
	pdf.Br(12)
	pdf.Cell(nil, fmt.Sprintf("- Secondary: %s", rec.Secondary))
	pdf.Br(12)
	pdf.Cell(nil, fmt.Sprintf("- Treatment Principle: %s", rec.Treatment.Principle))
	pdf.Br(12)
	pdf.Cell(nil, fmt.Sprintf("- Suggested Herbs: %s", rec.Treatment.Herbs))
	pdf.Br(12)
	pdf.Cell(nil, fmt.Sprintf("- Yoga: %s", rec.Treatment.Yoga))
	pdf.Br(20)

	if rec.TongueAnalysis != "" {
		if err := pdf.SetFont("DejaVu", "", 14); err != nil {
			return nil, err
		}
		pdf.Cell(nil, "Tongue Examination (Darshan):")
		pdf.Br(15)
		if err := pdf.SetFont("DejaVu", "", 11); err != nil {
			return nil, err
		}
		lines, _ := pdf.SplitText(rec.TongueAnalysis, 500)
		for _, l := range lines {
			pdf.Cell(nil, l)
			pdf.Br(12)
		}
		pdf.Br(10)
	}

	if rec.FinalOutput != "" {
		if err := pdf.SetFont("DejaVu", "", 14); err != nil {
			return nil, err
		}
		pdf.Cell(nil, "Guidance:")
		pdf.Br(15)
		if err := pdf.SetFont("DejaVu", "", 11); err != nil {
			return nil, err
		}
		lines, _ := pdf.SplitText(rec.FinalOutput, 500)
		for _, l := range lines {
			pdf.Cell(nil, l)
			pdf.Br(12)
		}
	}

	pdf.SetY(810)
	if err := pdf.SetFont("DejaVu", "", 9); err != nil {
		return nil, err
	}
	pdf.Cell(nil, fmt.Sprintf("Generated %s. Educational guidance only, not a medical diagnosis.",
		time.Now().Format("2006-01-02")))

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

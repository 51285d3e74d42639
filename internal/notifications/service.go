package notifications

import (
	"fmt"

	"github.com/csaugo/analisevoc/internal/config"
	"github.com/csaugo/analisevoc/internal/models"
	"github.com/csaugo/analisevoc/internal/report"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Service emails finished analysis reports to the configured recipient
type Service struct {
	config *config.Config
}

// NewService creates a new notification service
func NewService(cfg *config.Config) *Service {
	return &Service{config: cfg}
}

// Enabled reports whether a recipient is configured
func (s *Service) Enabled() bool {
	return s.config.NotificationEmail != ""
}

// SendAnalysisReport emails the HTML report for a completed analysis
func (s *Service) SendAnalysisReport(analysis *models.Analysis, companyName string) error {
	htmlBody, err := report.Generate(analysis)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	subject := fmt.Sprintf("Relatório Voz do Cliente - %s (%d menções)", companyName, analysis.TotalTweets)
	textBody := fmt.Sprintf(
		"Análise de %s concluída: %d menções (%d positivas, %d negativas, %d neutras).",
		companyName, analysis.TotalTweets,
		analysis.PositiveTweets, analysis.NegativeTweets, analysis.NeutralTweets,
	)

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", s.config.NotificationEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	logrus.Infof("Sent report email for %s to %s", companyName, s.config.NotificationEmail)
	return nil
}

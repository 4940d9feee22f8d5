package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/peptitrace/backend/config"
	"github.com/peptitrace/backend/internal/models"
)

const exportURLTTL = 15 * time.Minute

// ExportService writes analytics snapshots to object storage and hands out
// short-lived download links. The storage config may be nil when no bucket
// is configured.
type ExportService struct {
	db        *gorm.DB
	analytics *AnalyticsService
	storage   *config.S3Config
}

func NewExportService(db *gorm.DB, analytics *AnalyticsService, storage *config.S3Config) *ExportService {
	return &ExportService{db: db, analytics: analytics, storage: storage}
}

// ExportResult points at a finished export.
type ExportResult struct {
	Key         string    `json:"key"`
	DownloadURL string    `json:"downloadUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type exportSnapshot struct {
	GeneratedAt time.Time   `json:"generatedAt"`
	Dashboard   *Dashboard  `json:"dashboard"`
	Usage       *UsageStats `json:"usage"`
	Peptides    int64       `json:"peptides"`
	Effects     int64       `json:"effects"`
}

// ErrExportUnavailable is returned when no object storage is configured.
var ErrExportUnavailable = fmt.Errorf("export storage is not configured")

// ExportAnalytics snapshots the current analytics views, uploads the JSON
// document and returns a presigned download link.
func (s *ExportService) ExportAnalytics(ctx context.Context) (*ExportResult, error) {
	if s.storage == nil {
		return nil, ErrExportUnavailable
	}

	dashboard, err := s.analytics.GetDashboard(ctx)
	if err != nil {
		return nil, err
	}
	usage, err := s.analytics.Usage(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := exportSnapshot{
		GeneratedAt: time.Now().UTC(),
		Dashboard:   dashboard,
		Usage:       usage,
	}
	if err := s.db.WithContext(ctx).Model(&models.Peptide{}).Count(&snapshot.Peptides).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Effect{}).Count(&snapshot.Effects).Error; err != nil {
		return nil, err
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("exports/analytics-%s.json", snapshot.GeneratedAt.Format("20060102-150405"))
	if err := s.storage.UploadJSON(ctx, key, payload); err != nil {
		return nil, err
	}

	url, err := s.storage.GeneratePresignedURL(ctx, key, exportURLTTL)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		Key:         key,
		DownloadURL: url,
		ExpiresAt:   time.Now().Add(exportURLTTL),
	}, nil
}

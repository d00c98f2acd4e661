package service

import (
	"context"

	"github.com/google/uuid"

	"ai-datacharts-be/internal/dto"
	"ai-datacharts-be/internal/pkg/logger"
	"ai-datacharts-be/internal/repository/memory"
	"ai-datacharts-be/pkg/dataset"
	"ai-datacharts-be/pkg/store"
)

// IDatasetService handles dataset uploads and session creation.
type IDatasetService interface {
	Upload(ctx context.Context, filename string, raw []byte) (*dto.UploadDatasetResponse, error)
}

type datasetService struct {
	sessionRepo *memory.SessionRepository
	log         logger.ILogger
}

func NewDatasetService(sessionRepo *memory.SessionRepository, log logger.ILogger) IDatasetService {
	return &datasetService{
		sessionRepo: sessionRepo,
		log:         log,
	}
}

// Upload parses and profiles the dataset, then creates a fresh session
// owning both. A rejected file creates no session.
func (s *datasetService) Upload(ctx context.Context, filename string, raw []byte) (*dto.UploadDatasetResponse, error) {
	table, err := dataset.Load(filename, raw)
	if err != nil {
		s.log.Warn("dataset", "Upload rejected", map[string]interface{}{
			"filename": filename,
			"reason":   err.Error(),
		})
		return nil, err
	}

	profile := dataset.Profile(table)
	sessionId := uuid.New().String()
	session := store.NewSession(sessionId, table, profile)
	s.sessionRepo.Save(session)

	s.log.Info("dataset", "Dataset uploaded", map[string]interface{}{
		"session_id": sessionId,
		"filename":   filename,
		"rows":       table.RowCount(),
		"columns":    len(table.Columns),
	})

	return &dto.UploadDatasetResponse{
		SessionId: sessionId,
		Columns:   profile.Columns,
		Preview:   profile.Preview,
	}, nil
}

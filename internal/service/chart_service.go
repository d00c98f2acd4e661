package service

import (
	"context"
	"fmt"
	"strings"

	"ai-datacharts-be/internal/dto"
	"ai-datacharts-be/internal/pkg/logger"
	"ai-datacharts-be/internal/repository/memory"
	"ai-datacharts-be/pkg/apperror"
	"ai-datacharts-be/pkg/charts"
)

// IChartService serves explicit manual chart builds with optional grouping
// and aggregation.
type IChartService interface {
	BuildManual(ctx context.Context, req *dto.ManualChartRequest) (*dto.ManualChartResponse, error)
}

type chartService struct {
	sessionRepo *memory.SessionRepository
	log         logger.ILogger
}

func NewChartService(sessionRepo *memory.SessionRepository, log logger.ILogger) IChartService {
	return &chartService{
		sessionRepo: sessionRepo,
		log:         log,
	}
}

// BuildManual validates and builds the requested chart before any session
// state changes; the manual slot is only updated on full success.
func (s *chartService) BuildManual(ctx context.Context, req *dto.ManualChartRequest) (*dto.ManualChartResponse, error) {
	session, found := s.sessionRepo.Get(req.SessionId)
	if !found {
		return nil, apperror.NotFound("Session not found.")
	}

	session.Lock()
	chart, err := charts.BuildGrouped(session.Table, req.ChartType, req.GroupBy, req.Value, req.Agg)
	if err != nil {
		session.Unlock()
		return nil, err
	}
	session.SetManualChart(*chart)
	resp := &dto.ManualChartResponse{
		Message: fmt.Sprintf("%s chart updated with %s.", titleCaseType(chart.ChartType), chart.Title),
		Chart:   *chart,
		Charts:  session.AllCharts(),
	}
	session.Unlock()
	s.sessionRepo.Save(session)

	s.log.Info("chart", "Manual chart built", map[string]interface{}{
		"session_id": req.SessionId,
		"chart_type": chart.ChartType,
		"group_by":   req.GroupBy,
		"agg":        req.Agg,
	})
	return resp, nil
}

func titleCaseType(chartType string) string {
	if chartType == "" {
		return chartType
	}
	return strings.ToUpper(chartType[:1]) + chartType[1:]
}

package service

import (
	"context"
	"fmt"

	"ai-datacharts-be/internal/dto"
	"ai-datacharts-be/internal/pkg/logger"
	"ai-datacharts-be/internal/repository/memory"
	"ai-datacharts-be/pkg/agent"
	"ai-datacharts-be/pkg/apperror"
	"ai-datacharts-be/pkg/charts"
)

// IChatService routes chat messages: explicit chart commands are served from
// the dataset directly, everything else goes to the suggestion generator.
type IChatService interface {
	SendChat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatService struct {
	sessionRepo *memory.SessionRepository
	suggester   agent.Suggester
	log         logger.ILogger
}

func NewChatService(sessionRepo *memory.SessionRepository, suggester agent.Suggester, log logger.ILogger) IChatService {
	return &chatService{
		sessionRepo: sessionRepo,
		suggester:   suggester,
		log:         log,
	}
}

func (s *chatService) SendChat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	session, found := s.sessionRepo.Get(req.SessionId)
	if !found {
		return nil, apperror.NotFound("Session not found.")
	}

	if cmd := charts.ParseCommand(req.Message); cmd != nil {
		session.Lock()
		var reply string
		chart, err := charts.BuildForType(session.Table, cmd.ChartType)
		if err != nil {
			reply = fmt.Sprintf("Could not build a %s chart: %s", cmd.ChartType, err.Error())
		} else {
			session.SetManualChart(*chart)
			target := charts.DescribeTargetSlot(cmd.Slot, cmd.ChartType)
			reply = fmt.Sprintf("%s updated with '%s' using real data from your upload.", target, chart.Title)
		}
		session.AppendTurn(req.Message, reply)
		resp := &dto.ChatResponse{
			Reply:   reply,
			Charts:  session.AllCharts(),
			History: session.History(),
		}
		session.Unlock()
		s.sessionRepo.Save(session)
		return resp, nil
	}

	// Snapshot state under the lock, then release it for the upstream call.
	// The session is only mutated after a successful reply.
	session.Lock()
	suggestReq := &agent.SuggestRequest{
		ProfileText:      session.Profile.ProfileText,
		History:          session.History(),
		PriorSuggestions: session.Suggestions(),
		Message:          req.Message,
	}
	session.Unlock()

	result, err := s.suggester.SuggestCharts(ctx, suggestReq)
	if err != nil {
		s.log.Error("chat", "Suggestion generator failed", map[string]interface{}{
			"session_id": req.SessionId,
			"error":      err.Error(),
		})
		return nil, apperror.UpstreamWrap(err, "Chart agent request failed.")
	}
	if result == nil || result.Reply == "" {
		return nil, apperror.Upstream("Agent did not return a reply.")
	}

	session.Lock()
	session.AppendTurn(req.Message, result.Reply)
	session.ReplaceSuggestions(result.Suggestions)
	resp := &dto.ChatResponse{
		Reply:   result.Reply,
		Charts:  session.AllCharts(),
		History: session.History(),
	}
	session.Unlock()
	s.sessionRepo.Save(session)
	return resp, nil
}

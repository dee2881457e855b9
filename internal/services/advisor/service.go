// Package advisor answers employee money questions. It prefers a
// hosted LLM through an OpenRouter-compatible endpoint and degrades to
// deterministic rule-based advice when the model is unavailable.
package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"salarysync/internal/payroll"
	"salarysync/internal/repositories"

	"github.com/rs/zerolog/log"
)

var ErrEmptyMessage = errors.New("message is required")

const systemPrompt = `You are a supportive financial wellness assistant inside a salary advance app.
The user is a salaried employee in India. You receive their current figures as JSON.
Give short, practical advice in plain language, two to four sentences.
Never recommend loans or external credit products. Never ask for personal data.`

// Reply is one advisor answer. Source says whether the hosted model or
// the rule fallback produced it.
type Reply struct {
	Message string           `json:"message"`
	Source  string           `json:"source"`
	Context FinancialContext `json:"context"`
}

const (
	SourceLLM      = "llm"
	SourceFallback = "fallback"
)

type Service interface {
	Chat(ctx context.Context, userID uint, message string) (*Reply, error)
}

type service struct {
	userRepo       repositories.UserRepository
	withdrawalRepo repositories.WithdrawalRepository
	llm            LLMClient
	now            func() time.Time
}

func NewService(
	userRepo repositories.UserRepository,
	withdrawalRepo repositories.WithdrawalRepository,
	llm LLMClient,
) Service {
	if userRepo == nil {
		panic("user repository is required")
	}
	if withdrawalRepo == nil {
		panic("withdrawal repository is required")
	}
	return &service{
		userRepo:       userRepo,
		withdrawalRepo: withdrawalRepo,
		llm:            llm,
		now:            time.Now,
	}
}

func (s *service) Chat(ctx context.Context, userID uint, message string) (*Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	fc, err := s.buildContext(userID)
	if err != nil {
		return nil, err
	}

	if s.llm != nil {
		if reply, err := s.complete(ctx, fc, message); err == nil {
			return &Reply{Message: reply, Source: SourceLLM, Context: fc}, nil
		} else {
			log.Warn().Err(err).Uint("user_id", userID).Msg("llm completion failed, using fallback")
		}
	}

	return &Reply{Message: FallbackReply(fc), Source: SourceFallback, Context: fc}, nil
}

func (s *service) complete(ctx context.Context, fc FinancialContext, message string) (string, error) {
	figures, err := json.Marshal(fc)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	reply, err := s.llm.Complete(ctx, systemPrompt,
		fmt.Sprintf("My figures: %s\n\nQuestion: %s", figures, message))
	if err != nil {
		return "", err
	}

	reply = strings.TrimSpace(reply)
	if len(reply) < minReplyLength {
		return "", ErrBadReply
	}
	return reply, nil
}

func (s *service) buildContext(userID uint) (FinancialContext, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return FinancialContext{}, err
	}

	earned := payroll.EarnedSalary(user.MonthlySalary, user.DaysWorked, payroll.DaysInCycle)

	// Unverified employees see zero headroom, same as the dashboard.
	var limit float64
	if user.IsApproved() {
		prior, err := s.withdrawalRepo.SumByUserSince(userID, payroll.CycleStart(s.now()))
		if err != nil {
			return FinancialContext{}, err
		}
		limit = payroll.WithdrawableLimit(earned, prior)
	}

	return FinancialContext{
		MonthlySalary:  user.MonthlySalary,
		EarnedSalary:   earned,
		AvailableLimit: limit,
		DaysWorked:     user.DaysWorked,
	}, nil
}

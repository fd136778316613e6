package booking

import (
	"context"
	"strings"

	"github.com/javialvarezdrive/gym-policia-local/internal/domain"
	"github.com/javialvarezdrive/gym-policia-local/internal/utils"
)

// RegisterAgent validates and stores a new roster entry. Badge collisions are
// reported by the store's unique constraint as domain.ErrDuplicateBadge.
func (s *Service) RegisterAgent(ctx context.Context, agent *domain.Agent) (*domain.Agent, error) {
	agent.FirstName = strings.TrimSpace(agent.FirstName)
	agent.LastName = strings.TrimSpace(agent.LastName)

	if agent.FirstName == "" {
		return nil, domain.NewValidationError("firstName", "is required")
	}
	if agent.LastName == "" {
		return nil, domain.NewValidationError("lastName", "is required")
	}
	if err := utils.ValidateBadge(agent.Badge); err != nil {
		return nil, err
	}
	if err := utils.ValidateSection(agent.Section); err != nil {
		return nil, err
	}
	if err := utils.ValidateGroup(agent.Group); err != nil {
		return nil, err
	}

	if err := s.store.CreateAgent(ctx, agent); err != nil {
		return nil, err
	}

	return agent, nil
}

func (s *Service) GetAgent(ctx context.Context, id int64) (*domain.Agent, error) {
	return s.store.GetAgent(ctx, id)
}

func (s *Service) GetAgentByBadge(ctx context.Context, badge string) (*domain.Agent, error) {
	if err := utils.ValidateBadge(badge); err != nil {
		return nil, err
	}
	return s.store.GetAgentByBadge(ctx, badge)
}

func (s *Service) ListAgents(ctx context.Context, filter domain.AgentFilter) ([]*domain.Agent, error) {
	return s.store.ListAgents(ctx, filter)
}

// AgentPatch carries the updatable roster fields. The badge is immutable once
// registered.
type AgentPatch struct {
	FirstName *string
	LastName  *string
	Section   *domain.Section
	Group     *domain.Group
	Email     *string
	Phone     *string
	IsMonitor *bool
}

func (s *Service) UpdateAgent(ctx context.Context, id int64, patch AgentPatch) (*domain.Agent, error) {
	agent, err := s.store.GetAgent(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.FirstName != nil {
		trimmed := strings.TrimSpace(*patch.FirstName)
		if trimmed == "" {
			return nil, domain.NewValidationError("firstName", "is required")
		}
		agent.FirstName = trimmed
	}
	if patch.LastName != nil {
		trimmed := strings.TrimSpace(*patch.LastName)
		if trimmed == "" {
			return nil, domain.NewValidationError("lastName", "is required")
		}
		agent.LastName = trimmed
	}
	if patch.Section != nil {
		if err := utils.ValidateSection(*patch.Section); err != nil {
			return nil, err
		}
		agent.Section = *patch.Section
	}
	if patch.Group != nil {
		if err := utils.ValidateGroup(*patch.Group); err != nil {
			return nil, err
		}
		agent.Group = *patch.Group
	}
	if patch.Email != nil {
		agent.Email = *patch.Email
	}
	if patch.Phone != nil {
		agent.Phone = *patch.Phone
	}
	if patch.IsMonitor != nil {
		agent.IsMonitor = *patch.IsMonitor
	}

	if err := s.store.UpdateAgent(ctx, agent); err != nil {
		return nil, err
	}

	return agent, nil
}

// DeleteAgent refuses with domain.ErrInUse while the agent leads or attends
// any session.
func (s *Service) DeleteAgent(ctx context.Context, id int64) error {
	return s.store.DeleteAgent(ctx, id)
}

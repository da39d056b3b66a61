package chat

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/SOTO729/Evaluaasiv3-sub001/internal/models"
	apperrors "github.com/SOTO729/Evaluaasiv3-sub001/pkg/errors"
)

// Composer handles the new-conversation workflow, including the
// support-only candidate directory lookup. Directory queries are
// rate limited client-side because the UI fires one per keystroke.
type Composer struct {
	backend Backend
	token   string
	actor   models.Actor
	limiter *rate.Limiter
}

func NewComposer(backend Backend, token string, actor models.Actor) *Composer {
	return &Composer{
		backend: backend,
		token:   token,
		actor:   actor,
		// 5 qps with a small burst covers fast typing without hammering
		// the directory endpoint.
		limiter: rate.NewLimiter(rate.Limit(5), 3),
	}
}

// Create validates the payload for the actor's role and opens the
// conversation. Support-like actors must have picked a candidate first;
// candidates must not name one, the backend infers the owner from the
// session.
func (c *Composer) Create(ctx context.Context, input models.NewConversationInput) (*models.Conversation, error) {
	if c.actor.Role.SupportLike() {
		if input.CandidateUserID == nil || *input.CandidateUserID <= 0 {
			return nil, apperrors.Validation("select a candidate before creating the conversation")
		}
	} else {
		input.CandidateUserID = nil
	}
	if input.Priority == "" {
		input.Priority = models.PriorityNormal
	}

	return c.backend.CreateConversation(ctx, c.token, input)
}

// SearchCandidates queries the candidate directory. Empty queries return
// the default (unfiltered) page. Only meaningful for support-like
// actors; the endpoint is role-restricted server-side too.
func (c *Composer) SearchCandidates(ctx context.Context, query string) ([]models.Candidate, error) {
	if !c.actor.Role.SupportLike() {
		return nil, apperrors.Forbidden("candidate lookup is restricted to support staff")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperrors.Network("candidate lookup cancelled", err)
	}
	return c.backend.SearchCandidates(ctx, c.token, query)
}

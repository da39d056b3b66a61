package chat

import "github.com/SOTO729/Evaluaasiv3-sub001/internal/models"

// Status transition rules. Support-like roles (soporte, admin,
// developer) manage closure; candidates can resolve their own threads
// and pull a resolved thread back to open. closed never goes straight
// to resolved, it has to pass through open first.

// CanResolve reports whether the actor may move the conversation to
// resolved. Anyone can, but only from open.
func CanResolve(role models.Role, status models.ConversationStatus) bool {
	return status == models.StatusOpen
}

// CanClose reports whether the actor may close the conversation.
func CanClose(role models.Role, status models.ConversationStatus) bool {
	return role.SupportLike() && status != models.StatusClosed
}

// CanReopen reports whether the actor may move the conversation back to
// open. Candidates may reopen only what was resolved; support-like roles
// only what was closed.
func CanReopen(role models.Role, status models.ConversationStatus) bool {
	if role.SupportLike() {
		return status == models.StatusClosed
	}
	return role == models.RoleCandidate && status == models.StatusResolved
}

// CanSend reports whether composing is allowed at all. A closed
// conversation blocks sending for every role; it must be reopened first.
func CanSend(status models.ConversationStatus) bool {
	return status != models.StatusClosed
}

// CanTransition validates a concrete from→to edge for the actor.
func CanTransition(role models.Role, from, to models.ConversationStatus) bool {
	if from == to || !to.Valid() {
		return false
	}
	switch to {
	case models.StatusResolved:
		return CanResolve(role, from)
	case models.StatusClosed:
		return CanClose(role, from)
	case models.StatusOpen:
		return CanReopen(role, from)
	}
	return false
}

// AllowedTransitions lists every status the actor may move the
// conversation to from its current status. Used by the gateway so the UI
// only renders legal controls.
func AllowedTransitions(role models.Role, from models.ConversationStatus) []models.ConversationStatus {
	var out []models.ConversationStatus
	for _, to := range []models.ConversationStatus{models.StatusOpen, models.StatusResolved, models.StatusClosed} {
		if CanTransition(role, from, to) {
			out = append(out, to)
		}
	}
	return out
}

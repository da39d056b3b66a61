package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SOTO729/Evaluaasiv3-sub001/internal/models"
	apperrors "github.com/SOTO729/Evaluaasiv3-sub001/pkg/errors"
)

func TestSupportCreateRequiresCandidate(t *testing.T) {
	f := newFakeBackend()
	c := NewComposer(f, "tok", models.Actor{UserID: 7, Role: models.RoleSupport})

	_, err := c.Create(context.Background(), models.NewConversationInput{Subject: "hola"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	// validation happens before any network call
	assert.Empty(t, f.callLog())
}

func TestSupportCreateWithCandidateNoSubject(t *testing.T) {
	f := newFakeBackend()
	c := NewComposer(f, "tok", models.Actor{UserID: 7, Role: models.RoleSupport})

	candidateID := int64(42)
	conv, err := c.Create(context.Background(), models.NewConversationInput{CandidateUserID: &candidateID})
	require.NoError(t, err)
	assert.Equal(t, int64(42), conv.CandidateUserID)
	assert.Equal(t, models.StatusOpen, conv.Status)
	assert.Equal(t, models.PriorityNormal, conv.Priority)
	assert.Empty(t, conv.Subject)
}

func TestCandidateCreateStripsCandidateID(t *testing.T) {
	f := newFakeBackend()
	c := NewComposer(f, "tok", models.Actor{UserID: 10, Role: models.RoleCandidate})

	rogue := int64(99)
	conv, err := c.Create(context.Background(), models.NewConversationInput{Subject: "ayuda", CandidateUserID: &rogue})
	require.NoError(t, err)
	// the backend infers the owner from the session; the client never
	// forwards a candidate id for candidate actors
	assert.Equal(t, int64(0), conv.CandidateUserID)
}

func TestSearchCandidatesFiltered(t *testing.T) {
	f := newFakeBackend()
	f.candidates = []models.Candidate{
		{ID: 1, FullName: "Ana Torres", Username: "anat", Email: "ana@example.com"},
		{ID: 2, FullName: "Luis Pérez", Username: "luisp", Email: "luis@example.com"},
		{ID: 3, FullName: "Mariana Díaz", Username: "mdiaz", Email: "mariana@example.com"},
	}
	c := NewComposer(f, "tok", models.Actor{UserID: 7, Role: models.RoleSupport})

	hits, err := c.SearchCandidates(context.Background(), "ana")
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "Ana Torres", hits[0].FullName)
	assert.Equal(t, "Mariana Díaz", hits[1].FullName)
}

func TestSearchCandidatesEmptyQueryReturnsDefaultPage(t *testing.T) {
	f := newFakeBackend()
	f.candidates = []models.Candidate{{ID: 1, FullName: "Ana Torres"}}
	c := NewComposer(f, "tok", models.Actor{UserID: 7, Role: models.RoleAdmin})

	hits, err := c.SearchCandidates(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestSearchCandidatesForbiddenForCandidates(t *testing.T) {
	f := newFakeBackend()
	c := NewComposer(f, "tok", models.Actor{UserID: 10, Role: models.RoleCandidate})

	_, err := c.SearchCandidates(context.Background(), "ana")
	require.Error(t, err)
	assert.True(t, apperrors.IsAuth(err))
	assert.Empty(t, f.callLog())
}

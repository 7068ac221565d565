package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"review-lifecycle-api/internal/entity"
	"review-lifecycle-api/internal/repo/repo_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type ticketStatus string

type recordedWrite struct {
	id          uuid.UUID
	status      ticketStatus
	respondedAt *time.Time
}

func newTicketGate(identity *MockIdentity, writeErr error) (*ModerationGate[ticketStatus], *[]recordedWrite) {
	var writes []recordedWrite
	gate := NewModerationGate[ticketStatus](identity, "open", []ticketStatus{"open", "closed"}, errors.New("ticket not found"),
		func(ctx context.Context, id uuid.UUID, status ticketStatus, respondedAt *time.Time) error {
			if writeErr != nil {
				return writeErr
			}
			writes = append(writes, recordedWrite{id, status, respondedAt})
			return nil
		})
	gate.now = func() time.Time { return time.Date(2026, 6, 1, 15, 0, 0, 0, time.FixedZone("CEST", 2*3600)) }

	return gate, &writes
}

func TestModerationGate_WritesWithTimestamp(t *testing.T) {
	identity := new(MockIdentity)
	admin := uuid.New()
	identity.On("HasRole", mock.Anything, admin, "admin").Return(true, nil)

	gate, writes := newTicketGate(identity, nil)
	id := uuid.New()

	require.NoError(t, gate.SetStatus(context.Background(), id, "closed", entity.NewSession(admin)))
	require.NoError(t, gate.SetStatus(context.Background(), id, "open", entity.NewSession(admin)))

	require.Len(t, *writes, 2)
	closed := (*writes)[0]
	assert.Equal(t, id, closed.id)
	assert.Equal(t, ticketStatus("closed"), closed.status)
	require.NotNil(t, closed.respondedAt)
	assert.True(t, closed.respondedAt.Equal(time.Date(2026, 6, 1, 13, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.UTC, closed.respondedAt.Location())

	assert.Equal(t, ticketStatus("open"), (*writes)[1].status)
	assert.Nil(t, (*writes)[1].respondedAt)
}

func TestModerationGate_AuthorizationComesFirst(t *testing.T) {
	identity := new(MockIdentity)
	user := uuid.New()
	identity.On("HasRole", mock.Anything, user, "admin").Return(false, nil)

	gate, writes := newTicketGate(identity, nil)

	assert.ErrorIs(t, gate.SetStatus(context.Background(), uuid.New(), "bogus", nil), ErrUnauthenticated)
	assert.ErrorIs(t, gate.SetStatus(context.Background(), uuid.New(), "bogus", entity.NewSession(user)), ErrForbidden)
	assert.Empty(t, *writes)
	identity.AssertNotCalled(t, "GetUserById", mock.Anything, mock.Anything)
}

func TestModerationGate_RoleLookupFailure(t *testing.T) {
	identity := new(MockIdentity)
	actor := uuid.New()
	identity.On("HasRole", mock.Anything, actor, "admin").Return(false, errStoreDown)

	gate, writes := newTicketGate(identity, nil)

	err := gate.SetStatus(context.Background(), uuid.New(), "closed", entity.NewSession(actor))
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, errStoreDown)
	assert.Empty(t, *writes)
}

func TestModerationGate_WriteErrors(t *testing.T) {
	identity := new(MockIdentity)
	admin := uuid.New()
	identity.On("HasRole", mock.Anything, admin, "admin").Return(true, nil)

	gate, _ := newTicketGate(identity, repo_errors.ErrNotFound)
	err := gate.SetStatus(context.Background(), uuid.New(), "closed", entity.NewSession(admin))
	assert.EqualError(t, err, "ticket not found")

	gate, _ = newTicketGate(identity, errStoreDown)
	err = gate.SetStatus(context.Background(), uuid.New(), "closed", entity.NewSession(admin))
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

package scheduling

import (
	"context"
	"testing"

	bookingRepo "fotura/database/repository/booking"
	"fotura/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to models.BookingStatus
		want     bool
	}{
		{models.StatusDraft, models.StatusConfirmado, true},
		{models.StatusDraft, models.StatusCancelado, true},
		{models.StatusDraft, models.StatusRealizado, false},
		{models.StatusDraft, models.StatusConcluido, false},

		{models.StatusPendente, models.StatusConfirmado, true},
		{models.StatusPendente, models.StatusCancelado, true},
		{models.StatusPendente, models.StatusRealizado, false},

		{models.StatusConfirmado, models.StatusRealizado, true},
		{models.StatusConfirmado, models.StatusCancelado, true},
		{models.StatusConfirmado, models.StatusConcluido, false},
		{models.StatusConfirmado, models.StatusDraft, false},

		{models.StatusRealizado, models.StatusConcluido, true},
		{models.StatusRealizado, models.StatusCancelado, false},
		{models.StatusRealizado, models.StatusConfirmado, false},

		{models.StatusConcluido, models.StatusCancelado, false},
		{models.StatusConcluido, models.StatusRealizado, false},
		{models.StatusCancelado, models.StatusConfirmado, false},
		{models.StatusCancelado, models.StatusDraft, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"→"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestCanTransitionUnknownStatus(t *testing.T) {
	assert.False(t, CanTransition(models.BookingStatus("Arquivado"), models.StatusCancelado))
	assert.False(t, CanTransition(models.StatusDraft, models.BookingStatus("Arquivado")))
}

// fakeBookingStore is an in-memory BookingRepository for lifecycle tests.
type fakeBookingStore struct {
	byID          map[string]*models.Booking
	statusUpdates int
}

func (f *fakeBookingStore) Insert(ctx context.Context, b *models.Booking) error {
	f.byID[b.ID] = b
	return nil
}

func (f *fakeBookingStore) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingStore) GetByDate(ctx context.Context, date string) ([]models.Booking, error) {
	return nil, nil
}

func (f *fakeBookingStore) GetByTechnicianAndDate(ctx context.Context, technicianID, date string) ([]models.Booking, error) {
	return nil, nil
}

func (f *fakeBookingStore) UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus, entry models.HistoryEntry) error {
	b, ok := f.byID[id]
	if !ok || b.Status != from {
		return bookingRepo.ErrStaleBooking
	}
	b.Status = to
	b.History = append(b.History, entry)
	f.statusUpdates++
	return nil
}

func (f *fakeBookingStore) FinalizeDraft(ctx context.Context, p bookingRepo.FinalizeParams) error {
	return nil
}

func (f *fakeBookingStore) Reassign(ctx context.Context, bookingID, fromTechnicianID, toTechnicianID string, bufferMin int, entry models.HistoryEntry) error {
	return nil
}

func TestAdvanceStatusRejectsConfirmadoWithoutAssignment(t *testing.T) {
	// Draft and Pendente bookings carry no technician or window; a bare
	// status flip must not confirm them.
	store := &fakeBookingStore{byID: map[string]*models.Booking{
		"draft":    {ID: "draft", Status: models.StatusDraft, Date: testDate},
		"pendente": {ID: "pendente", Status: models.StatusPendente, Date: testDate},
	}}
	se := &DefaultSchedulingEngine{BookingRepo: store}

	for _, id := range []string{"draft", "pendente"} {
		err := se.AdvanceStatus(context.Background(), id, models.StatusConfirmado, "admin")
		require.Error(t, err)
		assert.True(t, IsIllegalTransition(err))
	}
	assert.Equal(t, 0, store.statusUpdates)
	assert.Equal(t, models.StatusDraft, store.byID["draft"].Status)
	assert.Equal(t, models.StatusPendente, store.byID["pendente"].Status)
}

func TestAdvanceStatusConfirmsAssignedPendente(t *testing.T) {
	store := &fakeBookingStore{byID: map[string]*models.Booking{
		"b1": {
			ID: "b1", Status: models.StatusPendente, Date: testDate,
			TechnicianID: "t1", Start: 600, End: 660,
		},
	}}
	se := &DefaultSchedulingEngine{BookingRepo: store}

	err := se.AdvanceStatus(context.Background(), "b1", models.StatusConfirmado, "admin")
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmado, store.byID["b1"].Status)
	require.Len(t, store.byID["b1"].History, 1)
	assert.Equal(t, "admin", store.byID["b1"].History[0].Actor)
}

func TestTerminalStatusesHaveNoOutgoingEdges(t *testing.T) {
	all := []models.BookingStatus{
		models.StatusDraft, models.StatusPendente, models.StatusConfirmado,
		models.StatusRealizado, models.StatusConcluido, models.StatusCancelado,
	}
	for _, to := range all {
		assert.False(t, CanTransition(models.StatusConcluido, to))
		assert.False(t, CanTransition(models.StatusCancelado, to))
	}
}

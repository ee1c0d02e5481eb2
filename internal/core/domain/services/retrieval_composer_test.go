package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"courierbot/internal/core/domain/model/conversation"
	"courierbot/internal/core/domain/model/delivery"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/knowledge"
	"courierbot/internal/core/domain/services"
)

type KnowledgeSearcherMock struct {
	mock.Mock
}

func (m *KnowledgeSearcherMock) Search(ctx context.Context, query string, limit int) ([]*knowledge.Entry, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*knowledge.Entry), args.Error(1)
}

type DeliveryListerMock struct {
	mock.Mock
}

func (m *DeliveryListerMock) ListForCourier(ctx context.Context, courierID kernel.UUID) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

func mustEntry(t *testing.T, title, body string) *knowledge.Entry {
	t.Helper()
	entry, err := knowledge.NewEntry(kernel.NewUUID(), "policies", title, body,
		[]string{"policy"}, time.Now().UTC())
	require.NoError(t, err)
	return entry
}

func mustDelivery(t *testing.T, courierID kernel.UUID, trackingNumber string, cod float64) *delivery.Delivery {
	t.Helper()
	dlv, err := delivery.NewDelivery(kernel.NewUUID(), courierID, trackingNumber,
		delivery.CustomerInfo{Name: "Asel N.", Phone: "+77001234567", Address: "12 Abay Ave"}, cod)
	require.NoError(t, err)
	return dlv
}

func TestRetrievalComposerCompose(t *testing.T) {
	courierID := kernel.NewUUID()

	t.Run("knowledge-backed intent queries the knowledge store", func(t *testing.T) {
		searcher := &KnowledgeSearcherMock{}
		lister := &DeliveryListerMock{}
		entry := mustEntry(t, "Refund policy", "Refunds are processed within 3 days.")
		searcher.On("Search", mock.Anything, "what is the refund policy", 3).
			Return([]*knowledge.Entry{entry}, nil).Once()

		composer := services.NewRetrievalComposer(searcher, lister, 0)
		bundle, err := composer.Compose(context.Background(), courierID,
			"what is the refund policy", conversation.IntentPolicyQuery)

		require.NoError(t, err)
		assert.False(t, bundle.IsEmpty())
		assert.Equal(t, []string{"Refund policy: Refunds are processed within 3 days."}, bundle.Facts())
		searcher.AssertExpectations(t)
		lister.AssertNumberOfCalls(t, "ListForCourier", 0)
	})

	t.Run("delivery-backed intent reads the courier's records", func(t *testing.T) {
		searcher := &KnowledgeSearcherMock{}
		lister := &DeliveryListerMock{}
		dlv := mustDelivery(t, courierID, "TRK-1", 1500)
		lister.On("ListForCourier", mock.Anything, courierID).
			Return([]*delivery.Delivery{dlv}, nil).Once()

		composer := services.NewRetrievalComposer(searcher, lister, 0)
		bundle, err := composer.Compose(context.Background(), courierID,
			"how much cod do I carry", conversation.IntentEarnings)

		require.NoError(t, err)
		require.Len(t, bundle.Facts(), 1)
		assert.Equal(t, "Delivery TRK-1 is assigned, for Asel N. at 12 Abay Ave, COD 1500.00", bundle.Facts()[0])
		lister.AssertExpectations(t)
		searcher.AssertNumberOfCalls(t, "Search", 0)
	})

	t.Run("unclassified intent retrieves nothing", func(t *testing.T) {
		searcher := &KnowledgeSearcherMock{}
		lister := &DeliveryListerMock{}

		composer := services.NewRetrievalComposer(searcher, lister, 0)
		bundle, err := composer.Compose(context.Background(), courierID,
			"hmm", conversation.IntentUnclassified)

		require.NoError(t, err)
		assert.True(t, bundle.IsEmpty())
		assert.Empty(t, bundle.Facts())
		searcher.AssertNumberOfCalls(t, "Search", 0)
		lister.AssertNumberOfCalls(t, "ListForCourier", 0)
	})

	t.Run("retrieval failure surfaces with an empty bundle", func(t *testing.T) {
		searcher := &KnowledgeSearcherMock{}
		lister := &DeliveryListerMock{}
		searcher.On("Search", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("store offline")).Once()

		composer := services.NewRetrievalComposer(searcher, lister, 0)
		bundle, err := composer.Compose(context.Background(), courierID,
			"refund policy", conversation.IntentPolicyQuery)

		require.Error(t, err)
		assert.True(t, bundle.IsEmpty())
	})

	t.Run("configured limit reaches the store", func(t *testing.T) {
		searcher := &KnowledgeSearcherMock{}
		lister := &DeliveryListerMock{}
		searcher.On("Search", mock.Anything, mock.Anything, 5).
			Return([]*knowledge.Entry{}, nil).Once()

		composer := services.NewRetrievalComposer(searcher, lister, 5)
		_, err := composer.Compose(context.Background(), courierID,
			"refund policy", conversation.IntentPolicyQuery)

		require.NoError(t, err)
		searcher.AssertExpectations(t)
	})
}

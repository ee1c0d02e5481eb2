package services

import (
	"context"
	"fmt"

	"courierbot/internal/core/domain/model/conversation"
	"courierbot/internal/core/domain/model/delivery"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/knowledge"
)

// DefaultKnowledgeLimit caps how many knowledge entries ground one answer.
const DefaultKnowledgeLimit = 3

// KnowledgeSearcher retrieves the best-matching knowledge entries for a
// message.
type KnowledgeSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]*knowledge.Entry, error)
}

// DeliveryLister retrieves a courier's own delivery records.
type DeliveryLister interface {
	ListForCourier(ctx context.Context, courierID kernel.UUID) ([]*delivery.Delivery, error)
}

// GroundingBundle is the factual material an answer is built from: knowledge
// entries for procedural questions, the courier's own deliveries for
// operational ones. Either side, or both, may be empty.
type GroundingBundle struct {
	Entries    []*knowledge.Entry
	Deliveries []*delivery.Delivery
}

// IsEmpty reports whether no grounding material was retrieved.
func (b GroundingBundle) IsEmpty() bool {
	return len(b.Entries) == 0 && len(b.Deliveries) == 0
}

// Facts renders the bundle as plain statements, one per retrieved record,
// in retrieval order.
func (b GroundingBundle) Facts() []string {
	facts := make([]string, 0, len(b.Entries)+len(b.Deliveries))
	for _, entry := range b.Entries {
		facts = append(facts, fmt.Sprintf("%s: %s", entry.Title(), entry.Body()))
	}
	for _, dlv := range b.Deliveries {
		fact := fmt.Sprintf("Delivery %s is %s, for %s at %s",
			dlv.TrackingNumber(), dlv.Status(), dlv.Customer().Name, dlv.Customer().Address)
		if dlv.CODAmount() > 0 {
			fact = fmt.Sprintf("%s, COD %.2f", fact, dlv.CODAmount())
		}
		facts = append(facts, fact)
	}
	return facts
}

// RetrievalComposer is a domain service that selects the grounding material
// for one message based on its classified intent. Knowledge-backed intents
// query the knowledge store, delivery-backed intents read the courier's own
// records, unclassified messages get no grounding at all.
type RetrievalComposer struct {
	knowledge      KnowledgeSearcher
	deliveries     DeliveryLister
	knowledgeLimit int
}

// NewRetrievalComposer creates a RetrievalComposer over the two retrieval
// sources. knowledgeLimit values below one fall back to
// DefaultKnowledgeLimit.
func NewRetrievalComposer(knowledgeSearcher KnowledgeSearcher, deliveryLister DeliveryLister,
	knowledgeLimit int) RetrievalComposer {
	if knowledgeLimit < 1 {
		knowledgeLimit = DefaultKnowledgeLimit
	}

	return RetrievalComposer{
		knowledge:      knowledgeSearcher,
		deliveries:     deliveryLister,
		knowledgeLimit: knowledgeLimit,
	}
}

// Compose retrieves the grounding bundle for a classified message. A failed
// retrieval returns the error alongside an empty bundle so the caller can
// degrade to an ungrounded answer instead of failing the turn.
func (c RetrievalComposer) Compose(ctx context.Context, courierID kernel.UUID,
	message string, intent conversation.Intent) (GroundingBundle, error) {
	var bundle GroundingBundle

	switch {
	case intent.IsKnowledgeBacked():
		entries, err := c.knowledge.Search(ctx, message, c.knowledgeLimit)
		if err != nil {
			return GroundingBundle{}, fmt.Errorf("search knowledge: %w", err)
		}
		bundle.Entries = entries
	case intent.IsDeliveryBacked():
		deliveries, err := c.deliveries.ListForCourier(ctx, courierID)
		if err != nil {
			return GroundingBundle{}, fmt.Errorf("list deliveries: %w", err)
		}
		bundle.Deliveries = deliveries
	}

	return bundle, nil
}

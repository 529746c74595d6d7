package document

// DocumentStatus represents the derived lifecycle status of a source
// document. Only Cancelled is ever set directly; the rest are recomputed
// from item and transaction state.
type DocumentStatus string

const (
	DocumentStatusConfirmed  DocumentStatus = "CONFIRMED"  // Valid shell, no active items yet
	DocumentStatusProcessing DocumentStatus = "PROCESSING" // Active items pending movement or payment
	DocumentStatusCompleted  DocumentStatus = "COMPLETED"  // All active items handled and money settled
	DocumentStatusCancelled  DocumentStatus = "CANCELLED"  // Terminal
)

// IsValid returns true if the status is a valid DocumentStatus
func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentStatusConfirmed, DocumentStatusProcessing, DocumentStatusCompleted, DocumentStatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true if the document can no longer change
func (s DocumentStatus) IsTerminal() bool {
	return s == DocumentStatusCancelled
}

// DeriveDocumentStatus computes a document's status from its active items
// and paired money transaction. Pure function: the same inputs always yield
// the same status regardless of call order.
func DeriveDocumentStatus(activeItems []Item, txn *Transaction) DocumentStatus {
	if len(activeItems) == 0 {
		return DocumentStatusConfirmed
	}

	for idx := range activeItems {
		if !activeItems[idx].Status.IsFinal() {
			return DocumentStatusProcessing
		}
	}

	if txn == nil || !txn.IsPaid() {
		return DocumentStatusProcessing
	}
	return DocumentStatusCompleted
}

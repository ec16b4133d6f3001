package txbuilder

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/melodify-live/melodify-client/internal/domain"
)

// HandleState tags a handle as locally predicted or ledger confirmed
type HandleState string

const (
	// HandleStatePredicted marks an id derived locally before submission.
	// Predicted ids are not stable across build/submit and must never be
	// used to address ledger objects.
	HandleStatePredicted HandleState = "predicted"
	// HandleStateConfirmed marks an id read back from a settled receipt
	HandleStateConfirmed HandleState = "confirmed"
)

// HandleKind names the entity a handle refers to
type HandleKind string

const (
	HandleKindTrack      HandleKind = "track"
	HandleKindCapability HandleKind = "capability"
	HandleKindPosition   HandleKind = "position"
)

// Handle is a tagged reference to an object a transaction mints. Builders
// return predicted handles; Reconcile is the only way to obtain a confirmed
// one, which forces callers to reconcile against the receipt instead of
// trusting the optimistic value.
type Handle struct {
	ID    string
	Kind  HandleKind
	State HandleState
}

// Confirmed reports whether the handle was reconciled against a receipt
func (h Handle) Confirmed() bool {
	return h.State == HandleStateConfirmed
}

// CreatedObject is a minted-object reference lifted from a receipt
type CreatedObject struct {
	ObjectID string
	Owner    string
}

// Reconcile resolves the predicted handle against the created-object
// references of a settled receipt, matching by the expected owner address.
// It returns a confirmed handle or ErrNotFound when the receipt minted
// nothing for that owner.
func (h Handle) Reconcile(created []CreatedObject, owner string) (Handle, error) {
	for _, obj := range created {
		if obj.Owner == owner {
			return Handle{ID: obj.ObjectID, Kind: h.Kind, State: HandleStateConfirmed}, nil
		}
	}
	return Handle{}, fmt.Errorf("%w: no created object owned by %s in receipt", domain.ErrNotFound, owner)
}

// predictedHandle derives the optimistic handle from the descriptor contents
func predictedHandle(kind HandleKind, desc *TxDescriptor) Handle {
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(string(kind)+"|"+desc.canonical())).String()
	return Handle{ID: id, Kind: kind, State: HandleStatePredicted}
}

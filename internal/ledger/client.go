package ledger

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"github.com/melodify-live/melodify-client/internal/adapter"
	"github.com/melodify-live/melodify-client/internal/domain"
	"github.com/melodify-live/melodify-client/internal/txbuilder"
)

// SignedTransaction is a descriptor serialized and signed by a wallet,
// ready for submission
type SignedTransaction struct {
	TxBytes    string   `json:"txBytes"` // base64 of the serialized descriptor
	Signatures []string `json:"signatures"`
	Sender     string   `json:"sender"`
}

// Client defines read and submit access to the distributed ledger.
// All methods are single network round trips; nothing retries a mutating
// call, and read failures surface to the caller for an explicit retry.
//
//go:generate mockgen -source=client.go -destination=../mocks/ledger_client.go -package=mocks -mock_names=Client=MockLedgerClient
type Client interface {
	// GetObject fetches one object by id. Returns domain.ErrNotFound when
	// the id does not resolve.
	GetObject(ctx context.Context, id string) (*RawRecord, error)

	// GetOwnedObjects lists the objects owned by an address, optionally
	// filtered to one struct type. The result set is unbounded; the client
	// walks every page.
	GetOwnedObjects(ctx context.Context, owner string, typeFilter string) ([]RawRecord, error)

	// QueryEvents returns events of one type ordered by ledger sequence;
	// descending means newest first.
	QueryEvents(ctx context.Context, eventType string, limit int, descending bool) ([]domain.Event, error)

	// SubmitTransaction submits a signed transaction and waits for the
	// settled receipt. Never retried: replaying a payment risks double spend.
	SubmitTransaction(ctx context.Context, signed *SignedTransaction) (*Receipt, error)

	// DryRun simulates a descriptor without executing it, used for
	// authorization checks that only the ledger can answer
	DryRun(ctx context.Context, sender string, desc *txbuilder.TxDescriptor) (*SimulationResult, error)
}

// client is the concrete JSON-RPC implementation of Client
type client struct {
	rpcURL     string
	httpClient adapter.HTTPClient
	json       adapter.JSON
}

// NewClient creates a ledger client against the given RPC endpoint
func NewClient(rpcURL string, httpClient adapter.HTTPClient, json adapter.JSON) Client {
	return &client{
		rpcURL:     rpcURL,
		httpClient: httpClient,
		json:       json,
	}
}

// call performs one JSON-RPC round trip and decodes the result envelope
func (c *client) call(ctx context.Context, method string, params []interface{}, result interface{}) error {
	reqBody, err := c.json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	respBody, err := c.httpClient.Post(ctx, c.rpcURL, "application/json", bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrUpstreamUnavailable, method, err)
	}

	var resp rpcResponse
	if err := c.json.Unmarshal(respBody, &resp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if resp.Error != nil {
		return fmt.Errorf("%w: %s: rpc error %d: %s", domain.ErrUpstreamUnavailable, method, resp.Error.Code, resp.Error.Message)
	}

	if err := c.json.Unmarshal(resp.Result, result); err != nil {
		return fmt.Errorf("failed to decode %s result: %w", method, err)
	}

	return nil
}

func (c *client) GetObject(ctx context.Context, id string) (*RawRecord, error) {
	var resp objectResponse
	err := c.call(ctx, "sui_getObject", []interface{}{
		id,
		map[string]interface{}{"showContent": true, "showOwner": true, "showType": true},
	}, &resp)
	if err != nil {
		return nil, err
	}

	if resp.Error != nil {
		return nil, fmt.Errorf("%w: %s (%s)", domain.ErrNotFound, id, resp.Error.Code)
	}

	record, err := toRawRecord(&resp)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", id, err)
	}

	return record, nil
}

func (c *client) GetOwnedObjects(ctx context.Context, owner string, typeFilter string) ([]RawRecord, error) {
	query := map[string]interface{}{
		"options": map[string]interface{}{"showContent": true, "showOwner": true, "showType": true},
	}
	if typeFilter != "" {
		query["filter"] = map[string]interface{}{"StructType": typeFilter}
	}

	var records []RawRecord
	var cursor *string
	for {
		var page ownedObjectsPage
		err := c.call(ctx, "suix_getOwnedObjects", []interface{}{owner, query, cursor, nil}, &page)
		if err != nil {
			return nil, err
		}

		for i := range page.Data {
			if page.Data[i].Error != nil || page.Data[i].Data == nil {
				// Deleted or unreadable entries are skipped, not fatal
				continue
			}
			record, err := toRawRecord(&page.Data[i])
			if err != nil {
				continue
			}
			records = append(records, *record)
		}

		if !page.HasNextPage || page.NextCursor == nil {
			return records, nil
		}
		cursor = page.NextCursor
	}
}

func (c *client) QueryEvents(ctx context.Context, eventType string, limit int, descending bool) ([]domain.Event, error) {
	var page eventsPage
	err := c.call(ctx, "suix_queryEvents", []interface{}{
		map[string]interface{}{"MoveEventType": eventType},
		nil,
		limit,
		descending,
	}, &page)
	if err != nil {
		return nil, err
	}

	events := make([]domain.Event, 0, len(page.Data))
	for _, raw := range page.Data {
		event := domain.Event{
			TxDigest: raw.ID.TxDigest,
			Type:     raw.Type,
			Sender:   raw.Sender,
		}
		if trackID, ok := raw.ParsedJSON["track_id"].(string); ok {
			event.TrackID = trackID
		}
		if ms, err := strconv.ParseInt(raw.TimestampMs, 10, 64); err == nil {
			event.Timestamp = time.UnixMilli(ms)
		}
		events = append(events, event)
	}

	return events, nil
}

func (c *client) SubmitTransaction(ctx context.Context, signed *SignedTransaction) (*Receipt, error) {
	var resp executionResponse
	err := c.call(ctx, "sui_executeTransactionBlock", []interface{}{
		signed.TxBytes,
		signed.Signatures,
		map[string]interface{}{"showEffects": true},
		"WaitForLocalExecution",
	}, &resp)
	if err != nil {
		return nil, err
	}

	if resp.Effects == nil {
		return nil, fmt.Errorf("%w: execution response missing effects", domain.ErrUpstreamUnavailable)
	}

	receipt := &Receipt{
		Digest: resp.Digest,
		Status: resp.Effects.Status.Status,
		Error:  resp.Effects.Status.Error,
	}
	for _, created := range resp.Effects.Created {
		receipt.Created = append(receipt.Created, CreatedRef{
			ObjectID: created.Reference.ObjectID,
			Owner:    ownerAddress(created.Owner),
		})
	}

	return receipt, nil
}

func (c *client) DryRun(ctx context.Context, sender string, desc *txbuilder.TxDescriptor) (*SimulationResult, error) {
	encoded, err := EncodeDescriptor(c.json, desc)
	if err != nil {
		return nil, err
	}

	var resp executionResponse
	err = c.call(ctx, "sui_devInspectTransactionBlock", []interface{}{sender, encoded}, &resp)
	if err != nil {
		return nil, err
	}

	if resp.Effects == nil {
		return nil, fmt.Errorf("%w: dry run response missing effects", domain.ErrUpstreamUnavailable)
	}

	return &SimulationResult{
		Status: resp.Effects.Status.Status,
		Error:  resp.Effects.Status.Error,
	}, nil
}

// EncodeDescriptor serializes a descriptor for the wire
func EncodeDescriptor(json adapter.JSON, desc *txbuilder.TxDescriptor) (string, error) {
	data, err := json.Marshal(desc)
	if err != nil {
		return "", fmt.Errorf("failed to serialize descriptor: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// CreatedObjects lifts the receipt's created references into the builder's
// reconciliation shape
func (r *Receipt) CreatedObjects() []txbuilder.CreatedObject {
	objects := make([]txbuilder.CreatedObject, 0, len(r.Created))
	for _, ref := range r.Created {
		objects = append(objects, txbuilder.CreatedObject{ObjectID: ref.ObjectID, Owner: ref.Owner})
	}
	return objects
}

// ownerAddress extracts the owning address from the node's polymorphic
// owner field; shared and immutable objects yield an empty address
func ownerAddress(owner interface{}) string {
	m, ok := owner.(map[string]interface{})
	if !ok {
		return ""
	}
	if addr, ok := m["AddressOwner"].(string); ok {
		return addr
	}
	return ""
}

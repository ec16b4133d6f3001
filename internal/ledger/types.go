package ledger

import "encoding/json"

// RawRecord is an undecoded ledger object as returned by the RPC node.
// It never crosses the adapter boundary; callers receive the typed view
// models produced by the mapper.
type RawRecord struct {
	ObjectID string                 `json:"objectId"`
	Type     string                 `json:"type"`
	Version  string                 `json:"version"`
	Owner    string                 `json:"owner"`
	Fields   map[string]interface{} `json:"fields"`
}

// CreatedRef is a reference to an object minted by a transaction
type CreatedRef struct {
	ObjectID string `json:"objectId"`
	Owner    string `json:"owner"`
}

// Receipt is the settled outcome of a submitted transaction
type Receipt struct {
	Digest  string       `json:"digest"`
	Status  string       `json:"status"`
	Error   string       `json:"error,omitempty"`
	Created []CreatedRef `json:"created,omitempty"`
}

// Success reports whether the transaction settled without error
func (r *Receipt) Success() bool {
	return r.Status == "success"
}

// SimulationResult is the outcome of a dev-inspect dry run
type SimulationResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Success reports whether the simulated execution would succeed
func (s *SimulationResult) Success() bool {
	return s.Status == "success"
}

// rpcRequest is a JSON-RPC 2.0 request envelope
type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

// rpcError is a JSON-RPC 2.0 error object
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// rpcResponse is a JSON-RPC 2.0 response envelope
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

// objectResponse is the node's object-read payload
type objectResponse struct {
	Data  *objectData  `json:"data"`
	Error *objectError `json:"error"`
}

type objectData struct {
	ObjectID string         `json:"objectId"`
	Version  string         `json:"version"`
	Owner    interface{}    `json:"owner"`
	Content  *objectContent `json:"content"`
}

type objectContent struct {
	DataType string                 `json:"dataType"`
	Type     string                 `json:"type"`
	Fields   map[string]interface{} `json:"fields"`
}

type objectError struct {
	Code     string `json:"code"`
	ObjectID string `json:"object_id"`
}

// ownedObjectsPage is one page of an owned-objects listing
type ownedObjectsPage struct {
	Data        []objectResponse `json:"data"`
	NextCursor  *string          `json:"nextCursor"`
	HasNextPage bool             `json:"hasNextPage"`
}

// eventsPage is one page of an event query
type eventsPage struct {
	Data        []rawEvent `json:"data"`
	NextCursor  *string    `json:"nextCursor"`
	HasNextPage bool       `json:"hasNextPage"`
}

type rawEvent struct {
	ID          eventID                `json:"id"`
	Type        string                 `json:"type"`
	Sender      string                 `json:"sender"`
	ParsedJSON  map[string]interface{} `json:"parsedJson"`
	TimestampMs string                 `json:"timestampMs"`
}

type eventID struct {
	TxDigest string `json:"txDigest"`
	EventSeq string `json:"eventSeq"`
}

// executionResponse is the node's transaction-execution payload
type executionResponse struct {
	Digest  string            `json:"digest"`
	Effects *executionEffects `json:"effects"`
}

type executionEffects struct {
	Status  executionStatus `json:"status"`
	Created []struct {
		Owner     interface{} `json:"owner"`
		Reference struct {
			ObjectID string `json:"objectId"`
		} `json:"reference"`
	} `json:"created"`
}

type executionStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

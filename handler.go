package custody

import (
	"encoding/json"
)

// Handler is a core engine that can process a few specific messages
// This could represent "add a validator", or "forward a call"
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a transaction.
// Check must never modify the store.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// CheckResult captures any non-error result of checking a transaction.
type CheckResult struct {
	// Log is human-readable informational string
	Log string
	// Approvals is the number of distinct validators that approved the
	// message.
	Approvals int
	// Required is the quorum that was enforced.
	Required int
}

// DeliverResult captures any non-error result of delivering a transaction.
type DeliverResult struct {
	// Log is human-readable informational string
	Log string
	// Events are emitted to external observers once the action is
	// committed.
	Events []Event
}

// Event is a key/value annotated record of something that happened while
// delivering a transaction.
type Event struct {
	Kind       string
	Attributes []Attribute
}

// Attribute is a single key/value pair of an Event.
type Attribute struct {
	Key   string
	Value string
}

// NewEvent creates an event from alternating key and value arguments.
func NewEvent(kind string, kv ...string) Event {
	e := Event{Kind: kind}
	for i := 0; i+1 < len(kv); i += 2 {
		e.Attributes = append(e.Attributes, Attribute{Key: kv[i], Value: kv[i+1]})
	}
	return e
}

// Registry is an interface to register your handler,
// the setup side of a Router
type Registry interface {
	Handle(path string, h Handler)
}

// Options are the app options
// Each extension can look up it's key and parse the json as desired
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key,
// and parses the json into the given obj.
// Returns an error if it cannot parse.
// Noop and no error if key is missing
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	return json.Unmarshal(msg, obj)
}

// Initializer implementations are used to initialize
// extensions from genesis file contents
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

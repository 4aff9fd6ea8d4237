package custody

// Msg is message for the custody account to take an action
// (Make a state transition). It is just the request, and
// must be validated by the Handlers. All authentication
// information is in the wrapping Tx.
type Msg interface {
	// Return the message path.
	// This is used by the Router to locate the proper Handler.
	// Msg should be created alongside the Handler that corresponds to them.
	//
	// Multiple types may have the same value, and will end up at the
	// same Handler.
	//
	// Must be alphanumeric [0-9A-Za-z_\-/]+
	Path() string

	// Validate performs only stateless checks on the message content.
	Validate() error
}

// Tx represent the data sent from the client to the account.
// It includes the actual message, along with information needed
// to authenticate it (cryptographic signatures).
type Tx interface {
	// GetMsg returns the action we wish to communicate
	GetMsg() (Msg, error)
}

// SignedTx is a Tx that carries the signatures approving its message.
// Signatures are opaque to everything but the verifier.
type SignedTx interface {
	Tx

	// GetSignatures returns the signatures in the order they were
	// supplied.
	GetSignatures() [][]byte
}

// GetPath returns the path of the message, or (missing) if no message
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

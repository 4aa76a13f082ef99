package service

// OperationError wraps any failure of a trademark operation. Callers get
// one error kind regardless of cause; the message names the operation.
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string {
	return "failed to " + e.Op + ": " + e.Err.Error()
}

func (e *OperationError) Unwrap() error { return e.Err }

// Operation names as they appear in error messages.
const (
	OpCreate = "create trademark"
	OpGet    = "get trademark"
	OpSearch = "search trademarks"
	OpUpdate = "update trademark"
	OpDelete = "delete trademark"
)

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &OperationError{Op: op, Err: err}
}

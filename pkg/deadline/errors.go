package deadline

// timeoutError is a timeout sentinel. It satisfies net.Error so callers
// that only know the net package still see Timeout() == true.
type timeoutError struct {
	msg string
}

func (e *timeoutError) Error() string   { return e.msg }
func (e *timeoutError) Timeout() bool   { return true }
func (e *timeoutError) Temporary() bool { return false }

// Timeout errors, one per kind of wait.
var (
	ErrConnectTimeout error = &timeoutError{msg: "connect timeout"}
	ErrReadTimeout    error = &timeoutError{msg: "read timeout"}
	ErrWriteTimeout   error = &timeoutError{msg: "write timeout"}
)

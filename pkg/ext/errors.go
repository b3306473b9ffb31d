package ext

import "fmt"

// CatchPanic implements a wrapper for panic recovery using
// the standard, built-in recover mechanism.
// The cause of the panic is returned as an error, a cause
// which is not an error is wrapped into one.
func CatchPanic(f func()) (err error) {
	defer func() {
		if p := recover(); p != nil {
			if e, ok := p.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("panic: %v", p)
			}
		}
	}()

	f()
	return nil
}

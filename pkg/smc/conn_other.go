//go:build !darwin

package smc

// openSystemTransport reports the management controller as unavailable on
// platforms without an SMC. Dependent metrics stay absent for the process.
func openSystemTransport() (Transport, error) {
	return nil, ErrUnavailable
}

//go:build !darwin

package ioreport

func openSystemSubscription() (Subscription, error) {
	return nil, ErrUnavailable
}

func loadFrequencyTable() []uint32 {
	return nil
}

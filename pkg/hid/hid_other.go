//go:build !darwin

package hid

// systemEnumerator reports the event system as unavailable on platforms
// without the vendor HID sensor services.
func systemEnumerator() (Enumerator, error) {
	return nil, ErrUnavailable
}

package domain

import "fmt"

// Credentials identify the wireless network to join.
type Credentials struct {
	SSID     string
	Password string
}

// Validate reports ErrMissingCredentials when either field is empty.
func (c Credentials) Validate() error {
	if c.SSID == "" {
		return fmt.Errorf("%w: WIFI_SSID is empty", ErrMissingCredentials)
	}
	if c.Password == "" {
		return fmt.Errorf("%w: WIFI_PASSWORD is empty", ErrMissingCredentials)
	}
	return nil
}

// String masks the password so credentials can be logged.
func (c Credentials) String() string {
	return fmt.Sprintf("ssid=%q password=*****", c.SSID)
}

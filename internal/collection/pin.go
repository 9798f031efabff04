package collection

import (
	"context"
	"crypto/subtle"
)

// HasPin reports whether a private-view PIN is configured.
func (c *Collection) HasPin(ctx context.Context) (bool, error) {
	pin, err := c.pins.GetPin(ctx)
	if err != nil {
		return false, err
	}
	return pin != "", nil
}

// SetPin stores a new PIN. An empty PIN clears the gate entirely.
func (c *Collection) SetPin(ctx context.Context, pin string) error {
	if err := c.pins.SetPin(ctx, pin); err != nil {
		return err
	}
	c.log.Info("private pin updated")
	return nil
}

// VerifyPin checks a PIN attempt against the stored value. With no PIN
// configured every attempt fails; the private view stays closed until
// one is set.
func (c *Collection) VerifyPin(ctx context.Context, attempt string) (bool, error) {
	stored, err := c.pins.GetPin(ctx)
	if err != nil {
		return false, err
	}
	if stored == "" {
		return false, nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(attempt)) == 1, nil
}

// RequirePin is VerifyPin with a mismatch promoted to an error, for
// call sites that gate an operation on it.
func (c *Collection) RequirePin(ctx context.Context, attempt string) error {
	ok, err := c.VerifyPin(ctx, attempt)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPinMismatch
	}
	return nil
}

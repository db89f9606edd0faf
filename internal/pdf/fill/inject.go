package fill

import "fmt"

// Inject writes a value into a field and asks the engine to regenerate
// its visual appearance. Callers pass the empty string when the request
// supplied no value. Engine failures are propagated; they abort the
// whole request rather than being recorded as a skipped field.
func Inject(f Field, value string) error {
	if err := f.SetValue(value); err != nil {
		return fmt.Errorf("set field value: %w", err)
	}
	if err := f.RegenerateAppearance(); err != nil {
		return fmt.Errorf("regenerate field appearance: %w", err)
	}
	return nil
}

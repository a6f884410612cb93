// validation.go
package stationprefs

import (
	"encoding/base64"
	"fmt"
	"strconv"
)

// MaxKeyLength matches the width of the key column in the SQL backends.
const MaxKeyLength = 255

func validateKey(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return fmt.Errorf("%w: key longer than %d bytes", ErrInvalidKey, MaxKeyLength)
	}
	return nil
}

// validateValue checks value against the codec of def. An empty value clears
// the setting and passes every known codec.
func validateValue(value string, def Setting) error {
	switch def.Codec {
	case CodecString, CodecList:
	case CodecInt:
		if value == "" {
			return nil
		}
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Errorf("%w: %s expects an integer", ErrInvalidValue, def.Key)
		}
	case CodecBase64:
		if _, err := base64.StdEncoding.DecodeString(value); err != nil {
			return fmt.Errorf("%w: %s expects base64 data", ErrInvalidValue, def.Key)
		}
	default:
		return fmt.Errorf("%w: unsupported codec for %s", ErrInvalidValue, def.Key)
	}
	return nil
}

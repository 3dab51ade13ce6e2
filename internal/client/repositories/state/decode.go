package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

// ErrCorrupt is returned by Load when a stored payload cannot be decoded.
// The stored payload is kept as is.
var ErrCorrupt = errors.New("corrupt state payload")

// decodeInto unmarshals payload into a fresh value of dst's element type and
// only assigns it on success, so a failed decode never leaves dst half-written.
func decodeInto(bucket string, payload []byte, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("failed to decode state[%s]: destination must be a non-nil pointer", bucket)
	}
	fresh := reflect.New(rv.Elem().Type())
	if err := json.Unmarshal(payload, fresh.Interface()); err != nil {
		return fmt.Errorf("failed to decode state[%s]: %w: %v", bucket, ErrCorrupt, err)
	}
	rv.Elem().Set(fresh.Elem())
	return nil
}

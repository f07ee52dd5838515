package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/piwi3910/fenestra/internal/model"
)

// decodeStrict unmarshals JSON, rejecting fields v does not declare.
func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if strings.HasPrefix(err.Error(), "json: unknown field") {
			return fmt.Errorf("%w: %s", model.ErrUnknownKey, strings.TrimPrefix(err.Error(), "json: unknown field "))
		}
		return err
	}
	return nil
}

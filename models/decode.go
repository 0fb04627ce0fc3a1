package models

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Decode copia un cuerpo JSON ya validado en un struct de entrada. Sólo se
// asignan los campos que existen en dst; el resto del mapa se ignora.
func Decode(input map[string]interface{}, dst interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Squash:           true,
		Result:           dst,
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}
	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}
	return nil
}

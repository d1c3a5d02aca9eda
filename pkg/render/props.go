package render

import (
	"reflect"

	"github.com/aretw0/sail/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

type formLayoutProps struct {
	Label    string `mapstructure:"label"`
	Contents []any  `mapstructure:"contents"`
}

type textFieldProps struct {
	Label    string `mapstructure:"label"`
	Value    string `mapstructure:"value"`
	SaveInto string `mapstructure:"saveInto"`
}

type choice struct {
	Label string `mapstructure:"label"`
	Value string `mapstructure:"value"`
}

type dropdownFieldProps struct {
	Label    string   `mapstructure:"label"`
	Choices  []choice `mapstructure:"choices"`
	SaveInto string   `mapstructure:"saveInto"`
}

type buttonProps struct {
	Label string `mapstructure:"label"`
}

// decodeProps fills out from a node's props. Decoding is weakly typed and
// best-effort: fields that cannot be converted keep their zero value and the
// returned error only reports what was skipped.
func decodeProps(props map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       stringHook,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(props)
}

// stringHook renders any document value into a string field.
func stringHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String {
		return data, nil
	}
	return domain.Stringify(data), nil
}

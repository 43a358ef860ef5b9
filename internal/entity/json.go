package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type fieldJSON struct {
	Name       string          `json:"name"`
	DataType   DataType        `json:"dataType"`
	Properties json.RawMessage `json:"properties,omitempty"`
}

// MarshalJSON: {"name","dataType","properties"} — как отдаёт слой моделирования.
func (f Field) MarshalJSON() ([]byte, error) {
	out := fieldJSON{Name: f.Name, DataType: f.DataType}
	switch p := f.Properties.(type) {
	case nil, NoProperties:
		out.Properties = json.RawMessage(`{}`)
	default:
		b, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		out.Properties = b
	}
	return json.Marshal(out)
}

// UnmarshalJSON раскладывает properties в payload по тегу dataType.
// Неизвестный тег не ошибка здесь — его отвергнет компилятор.
func (f *Field) UnmarshalJSON(b []byte) error {
	var in fieldJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	f.Name = in.Name
	f.DataType = in.DataType

	raw := bytes.TrimSpace(in.Properties)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		raw = []byte(`{}`)
	}

	switch PropertiesFor(in.DataType).(type) {
	case LookupProperties:
		var p LookupProperties
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("field %s: %w: %v", in.Name, ErrMalformedProperties, err)
		}
		f.Properties = p
	case OptionSetProperties:
		var p OptionSetProperties
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("field %s: %w: %v", in.Name, ErrMalformedProperties, err)
		}
		f.Properties = p
	case TwoOptionsProperties:
		var p TwoOptionsProperties
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("field %s: %w: %v", in.Name, ErrMalformedProperties, err)
		}
		f.Properties = p
	default:
		f.Properties = NoProperties{}
	}
	return nil
}

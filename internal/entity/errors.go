package entity

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedDataType = errors.New("unsupported data type")
	ErrMalformedProperties = errors.New("malformed properties")
)

// FieldError привязывает ошибку к конкретному полю (и сущности, если известна).
type FieldError struct {
	Entity   string
	Field    string
	DataType DataType
	Err      error
	Detail   string
}

func (e *FieldError) Error() string {
	where := e.Field
	if e.Entity != "" {
		where = e.Entity + "." + e.Field
	}
	msg := fmt.Sprintf("%s (%s): %v", where, e.DataType, e.Err)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *FieldError) Unwrap() error { return e.Err }

// WithEntity проставляет имя сущности в FieldError; прочие ошибки возвращает как есть.
func WithEntity(err error, entityName string) error {
	var fe *FieldError
	if errors.As(err, &fe) && fe.Entity == "" {
		cp := *fe
		cp.Entity = entityName
		return &cp
	}
	return err
}

package handler

import (
	"reflect"

	"github.com/gdugdh24/cofounder-backend/internal/usecase"
	"github.com/gin-gonic/gin/binding"
)

func init() {
	binding.Validator = structValidator{}
}

// structValidator makes gin bind with the use case validator, so binding
// failures already carry domain.ErrInvalidInput and json field names.
type structValidator struct{}

func (structValidator) ValidateStruct(obj any) error {
	if obj == nil || reflect.Indirect(reflect.ValueOf(obj)).Kind() != reflect.Struct {
		return nil
	}
	return usecase.Validate(obj)
}

func (structValidator) Engine() any {
	return usecase.Engine()
}

package handlers

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance. Field names in messages come
// from the json struct tags so they match what clients actually send.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkStruct evaluates every rule declared on the struct's fields and
// returns all violation messages. An empty slice means the input is valid.
func checkStruct(v any) []string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var msgs []string
	verrs, _ := err.(validator.ValidationErrors)
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	if len(msgs) == 0 {
		msgs = append(msgs, "Invalid request body.")
	}
	return msgs
}

// fieldMessage renders a single rule violation as a user-facing message.
func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", field)
	case "email":
		return "Valid email is required."
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters.", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", field, fe.Param())
	default:
		return fmt.Sprintf("%s format is invalid.", field)
	}
}

// checkRequest responds with 400 and the collected violation messages if
// the body fails validation, returning false so the handler can bail out.
// The first message is the primary error; the full list rides alongside.
func checkRequest(w http.ResponseWriter, v any) bool {
	msgs := checkStruct(v)
	if len(msgs) == 0 {
		return true
	}
	respondJSON(w, http.StatusBadRequest, map[string]any{
		"error":  msgs[0],
		"errors": msgs,
	})
	return false
}

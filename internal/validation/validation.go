package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/salafuz/admin-panel/pkg/api"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Ошибки называем по JSON имени поля, как их видит сервер и UI
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Error is a validation failure with a field -> message mapping.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fmt.Sprintf("%s %s", k, e.Fields[k]))
	}
	return strings.Join(msgs, "; ")
}

func (e *Error) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = msg
	}
}

func (e *Error) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Struct validates s by its `validate` tags and returns *Error on failure.
func Struct(s any) error {
	verr := &Error{}
	collect(verr, s)
	return verr.orNil()
}

func collect(verr *Error, s any) {
	err := validate.Struct(s)
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.add("_", err.Error())
		return
	}
	for _, fe := range fieldErrs {
		verr.add(fe.Field(), msgForTag(fe))
	}
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed on '%s' validation", fe.Tag())
	}
}

// ValidateCredentials проверяет логин и пароль перед отправкой на сервер
// Логин обязателен, пароль не короче 6 символов
func ValidateCredentials(req api.LoginRequest) error {
	verr := &Error{}
	if strings.TrimSpace(req.Login) == "" {
		verr.add("login", "is required")
	}
	if strings.TrimSpace(req.Password) == "" {
		verr.add("password", "is required")
	}
	collect(verr, req)
	return verr.orNil()
}

// Post validates a post input. On create title and category_id are mandatory;
// a scheduled post must carry publish_at.
func Post(in api.PostInput, create bool) error {
	verr := &Error{}
	if create {
		if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
			verr.add("title", "is required")
		}
		if in.CategoryID == nil || *in.CategoryID == 0 {
			verr.add("category_id", "is required")
		}
		if in.Status != nil && *in.Status == api.StatusScheduled && in.PublishAt == nil {
			verr.add("publish_at", "is required for scheduled posts")
		}
	}
	collect(verr, in)
	return verr.orNil()
}

// Category validates a category input.
func Category(in api.CategoryInput, create bool) error {
	verr := &Error{}
	requireName(verr, in.Name, create)
	collect(verr, in)
	return verr.orNil()
}

// Tag validates a tag input.
func Tag(in api.TagInput, create bool) error {
	verr := &Error{}
	requireName(verr, in.Name, create)
	collect(verr, in)
	return verr.orNil()
}

// Scholar validates a scholar input.
func Scholar(in api.ScholarInput, create bool) error {
	verr := &Error{}
	requireName(verr, in.Name, create)
	if in.BirthYear != nil && in.DeathYear != nil && *in.DeathYear != 0 && *in.DeathYear < *in.BirthYear {
		verr.add("death_year", "must not be before birth_year")
	}
	collect(verr, in)
	return verr.orNil()
}

// Image validates image metadata.
func Image(in api.ImageInput, create bool) error {
	verr := &Error{}
	requireName(verr, in.Name, create)
	collect(verr, in)
	return verr.orNil()
}

// Status checks that s is a known post status.
func Status(s string) error {
	switch s {
	case api.StatusDraft, api.StatusPublished, api.StatusScheduled:
		return nil
	}
	return &Error{Fields: map[string]string{"status": "must be one of: draft published scheduled"}}
}

func requireName(verr *Error, name *string, create bool) {
	if !create {
		return
	}
	if name == nil || strings.TrimSpace(*name) == "" {
		verr.add("name", "is required")
	}
}

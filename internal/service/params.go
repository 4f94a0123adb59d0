package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jpvieira/borga/internal/errs"
)

// Param structs use pointer fields so a missing property is
// distinguishable from a zero value, and carry declarative validate
// tags. Violations are aggregated into a single BAD_REQUEST whose
// context maps JSON field name → reason, so a caller can fix every
// problem in one round trip.

// RegisterUserParams is the payload for UserService.Register.
type RegisterUserParams struct {
	UserID   *string `json:"userId" validate:"required"`
	Name     *string `json:"name" validate:"required"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
}

// LoginParams is the payload for UserService.Login.
type LoginParams struct {
	UserID   *string `json:"userId" validate:"required"`
	Password *string `json:"password" validate:"required"`
}

// CreateGroupParams is the payload for GroupService.Create. The group
// id is caller-chosen, unique per user.
type CreateGroupParams struct {
	GroupID     *string `json:"groupId" validate:"required"`
	Name        *string `json:"groupName" validate:"required"`
	Description *string `json:"groupDescription" validate:"required"`
}

// EditGroupParams is the payload for GroupService.Edit. Both fields are
// optional but at least one must be present; an absent field keeps its
// prior value.
type EditGroupParams struct {
	Name        *string `json:"groupName"`
	Description *string `json:"groupDescription"`
}

// AddGameParams is the payload for GroupService.AddGame. The game is
// resolved through the catalog by name.
type AddGameParams struct {
	GameName *string `json:"gameName" validate:"required"`
}

// UserToken is returned by Register and Login.
type UserToken struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Token  string `json:"token"`
}

// validate is shared; field names in violations come from json tags so
// the error context matches the wire shape.
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

// validateParams checks a param struct and aggregates every violation
// into one BAD_REQUEST error.
func validateParams(params any) error {
	err := validate.Struct(params)
	if err == nil {
		return nil
	}
	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return errs.New("validation failed")
	}
	fields := make(map[string]string, len(violations))
	for _, v := range violations {
		fields[v.Field()] = reasonFor(v)
	}
	return errs.BadRequest(fields)
}

func reasonFor(v validator.FieldError) string {
	switch v.Tag() {
	case "required":
		return "required property missing"
	case "min":
		return "value below minimum length"
	default:
		return "invalid value"
	}
}

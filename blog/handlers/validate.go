package handlers

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aileon/awesome"
)

var (
	emailPattern = regexp.MustCompile(`^[a-z0-9\.\-\_]+\@[a-z0-9\-\_]+(\.[a-z0-9\-\_]+){1,4}$`)
	sha1Pattern  = regexp.MustCompile(`^[0-9a-f]{40}$`)
)

// validate reports the first failing field as an APIError. Input structs
// carry the error message in a msg tag.
type validate struct {
	v *validator.Validate
}

func newValidate() *validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	_ = v.RegisterValidation("account_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("sha1hex", func(fl validator.FieldLevel) bool {
		return sha1Pattern.MatchString(fl.Field().String())
	})
	return &validate{v: v}
}

func (v *validate) Struct(in any) error {
	err := v.v.Struct(in)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return err
	}

	fe := ve[0]
	msg := ""
	if f, ok := reflect.TypeOf(in).Elem().FieldByName(fe.StructField()); ok {
		msg = f.Tag.Get("msg")
	}
	return awesome.ErrValue(fe.Field(), msg)
}

type registerInput struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,account_email"`
	Passwd string `json:"passwd" validate:"required,sha1hex"`
}

type authenticateInput struct {
	Email  string `json:"email" validate:"required" msg:"Invalid email."`
	Passwd string `json:"passwd" validate:"required" msg:"Invalid password."`
}

type blogInput struct {
	Name    string `json:"name" validate:"required" msg:"name cannot be empty."`
	Summary string `json:"summary" validate:"required" msg:"summary cannot be empty."`
	Content string `json:"content" validate:"required" msg:"content cannot be empty."`
}

type commentInput struct {
	Content string `json:"content" validate:"required" msg:"content cannot be empty."`
}

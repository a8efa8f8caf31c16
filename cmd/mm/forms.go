package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	u "github.com/gofrs/uuid/v5"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type registerForm struct {
	Username string `validate:"required,min=3,max=30"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

type profileForm struct {
	Bio string `validate:"max=500"`
}

// checkForm reports the first validation failure in plain words.
func checkForm(f any) error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%s is missing or invalid (%s)", strings.ToLower(fe.Field()), fe.Tag())
	}
	return err
}

func validID(id string) error {
	if id == "" {
		return errors.New("need a user id")
	}
	if _, err := u.FromString(id); err != nil {
		return fmt.Errorf("invalid user id %q", id)
	}
	return nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/natman/internal/client/models"
	"github.com/dmitrijs2005/natman/internal/client/services"
	"github.com/dmitrijs2005/natman/internal/client/validation"
	"github.com/dmitrijs2005/natman/internal/common"
)

// Registration values the form does not ask for unless the user types one.
const (
	defaultAge   = 25
	defaultPhone = "+79990000000"
)

// Login prompts for credentials, signs in and persists the session.
//
// The password byte slice is wiped before returning. Failures are shown as
// an "Error" alert carrying the server's message or the generic network
// message.
func (a *App) Login(ctx context.Context) error {
	userName, err := a.ask("Enter username (email)")
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	return a.submit(ctx, func(ctx context.Context) error {
		res, err := a.flow.SignIn(ctx, userName, string(password))
		if err != nil {
			return a.alertErr("Error", err)
		}
		a.alert("Success", res.Message)
		a.greet()
		return nil
	})
}

// Register asks for the visitor's name, e-mail and password, creates the
// account and signs in with it. The e-mail doubles as the username. When
// the account is created but the automatic login fails, the user is told to
// login manually.
func (a *App) Register(ctx context.Context) error {
	name, err := a.ask("Enter full name")
	if err != nil {
		return err
	}
	email, err := a.ask("Enter email")
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ageText, err := a.ask(fmt.Sprintf("Enter age (Enter for %d)", defaultAge))
	if err != nil {
		return err
	}
	age := defaultAge
	if ageText != "" {
		if age, err = strconv.Atoi(ageText); err != nil {
			return a.alertErr("Registration Error", &common.ValidationError{Field: "age", Reason: "must be a number"})
		}
	}
	phone, err := a.ask(fmt.Sprintf("Enter phone (Enter for %s)", defaultPhone))
	if err != nil {
		return err
	}
	if phone == "" {
		phone = defaultPhone
	}

	first, surname := validation.SplitFullName(name)
	reg := models.Registration{
		Username:    email,
		Password:    string(password),
		FirstName:   first,
		Surname:     surname,
		Age:         age,
		Mail:        email,
		PhoneNumber: phone,
	}

	return a.submit(ctx, func(ctx context.Context) error {
		_, _, err := a.flow.SignUp(ctx, reg)
		switch {
		case errors.Is(err, services.ErrLoginAfterRegister):
			a.alert("Success", "Registration successful! Please login manually.")
			return nil
		case err != nil:
			return a.alertErr("Registration Error", err)
		}
		a.alert("Success", "Registration successful!")
		a.greet()
		return nil
	})
}

// Logout asks for confirmation, then clears the session and moves the gate
// to the signed-out area.
func (a *App) Logout(ctx context.Context) error {
	answer, err := a.ask("Выход: Вы уверены, что хотите выйти? (y/n)")
	if err != nil {
		return err
	}
	switch strings.ToLower(answer) {
	case "y", "yes", "д", "да":
	default:
		fmt.Fprintln(a.out, "Отмена")
		return nil
	}

	if err := a.gate.Logout(ctx); err != nil {
		return a.alertErr("Выход", err)
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

// Ping checks that the server answers.
func (a *App) Ping(ctx context.Context) error {
	return a.submit(ctx, func(ctx context.Context) error {
		banner, err := a.authService.Ping(ctx)
		if err != nil {
			return a.alertErr("Connection", err)
		}
		a.alert("Connection", "Server is up: "+banner)
		return nil
	})
}

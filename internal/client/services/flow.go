package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/natman/internal/client/models"
	"github.com/dmitrijs2005/natman/internal/client/session"
	"github.com/dmitrijs2005/natman/internal/logging"
)

// ErrLoginAfterRegister reports an account that was created but could not
// be signed in afterwards.
var ErrLoginAfterRegister = errors.New("registered but login failed")

// RegisteredError carries the registration result when the follow-up login
// fails. It matches both ErrLoginAfterRegister and the login error.
type RegisteredError struct {
	Result models.RegisterResult
	Err    error
}

func (e *RegisteredError) Error() string {
	return fmt.Sprintf("%v: %v", ErrLoginAfterRegister, e.Err)
}

func (e *RegisteredError) Unwrap() []error {
	return []error{ErrLoginAfterRegister, e.Err}
}

// Flow sequences the steps of signing in and out. Each step short-circuits
// the rest on failure.
type Flow struct {
	auth   AuthService
	holder *session.Holder
	log    logging.Logger
}

func NewFlow(auth AuthService, holder *session.Holder, log logging.Logger) *Flow {
	if log == nil {
		log = logging.Nop()
	}
	return &Flow{auth: auth, holder: holder, log: log}
}

// SignIn logs in and persists the session.
func (f *Flow) SignIn(ctx context.Context, username, password string) (*models.LoginResult, error) {
	res, err := f.auth.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if _, err := f.holder.Establish(ctx, res.Token, res.User); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return res, nil
}

// SignUp registers, then signs in with the same credentials.
func (f *Flow) SignUp(ctx context.Context, reg models.Registration) (*models.RegisterResult, *models.LoginResult, error) {
	registered, err := f.auth.Register(ctx, reg)
	if err != nil {
		return nil, nil, err
	}

	loggedIn, err := f.SignIn(ctx, reg.Username, reg.Password)
	if err != nil {
		f.log.Warn(ctx, "login after registration failed", "user_id", registered.UserID, "error", err)
		return registered, nil, &RegisteredError{Result: *registered, Err: err}
	}
	return registered, loggedIn, nil
}

// SignOut forgets the session. Signing out twice is not an error.
func (f *Flow) SignOut(ctx context.Context) error {
	return f.holder.Clear(ctx)
}

// Package services contains application services for the NatMan client.
// This file defines the session service: login, registration and the
// connection probe. Results and failures come back in one uniform shape
// regardless of what went wrong underneath.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/natman/internal/client/api"
	"github.com/dmitrijs2005/natman/internal/client/models"
	"github.com/dmitrijs2005/natman/internal/client/validation"
	"github.com/dmitrijs2005/natman/internal/common"
	"github.com/dmitrijs2005/natman/internal/logging"
)

const (
	loginPath    = "/auth/login"
	registerPath = "/users/"

	// LoginSuccessMessage is reported by every successful login.
	LoginSuccessMessage = "Login successful"
)

// AuthService defines authentication operations for the screens.
//
// Contract:
//   - Login: exchange credentials for a token and a profile.
//   - Register: create a new account on the server.
//   - Ping: check that the server answers.
//
// Login and Register validate their input before any request is made and
// report every remote failure as *common.AuthError. They never retry and
// have no side effects; persisting the session is the caller's job.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.LoginResult, error)
	Register(ctx context.Context, reg models.Registration) (*models.RegisterResult, error)
	Ping(ctx context.Context) (string, error)
}

type authService struct {
	transport api.Transport
	timeout   time.Duration
	log       logging.Logger
}

// NewAuthService binds an AuthService to the transport. timeout bounds
// login and registration calls; zero disables it.
func NewAuthService(transport api.Transport, timeout time.Duration, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{transport: transport, timeout: timeout, log: log}
}

// Login posts the credentials to /auth/login and maps the response into a
// LoginResult. A response without a token is treated as a failure.
func (a *authService) Login(ctx context.Context, username, password string) (*models.LoginResult, error) {
	if err := validation.ValidateCredentials(username, password).Err(); err != nil {
		return nil, err
	}

	var resp models.LoginResponse
	creds := models.Credentials{Username: username, Password: password}
	if err := a.transport.PostJSON(ctx, loginPath, creds, &resp, api.WithTimeout(a.timeout)); err != nil {
		return nil, a.fail(ctx, "login", err)
	}
	if resp.AccessToken == "" {
		return nil, a.fail(ctx, "login", errors.New("response carries no access token"))
	}

	a.log.Info(ctx, "login succeeded", "user_id", resp.UserID, "token", logging.Redact(resp.AccessToken))

	return &models.LoginResult{
		Success: true,
		Token:   resp.AccessToken,
		User: models.User{
			ID:        resp.UserID,
			Username:  resp.Username,
			FirstName: resp.FirstName,
			Surname:   resp.Surname,
			Role:      resp.Role,
		},
		Message: LoginSuccessMessage,
	}, nil
}

// Register posts the registration to /users/.
func (a *authService) Register(ctx context.Context, reg models.Registration) (*models.RegisterResult, error) {
	if err := validation.ValidateRegistration(reg).Err(); err != nil {
		return nil, err
	}

	var resp models.RegisterResponse
	if err := a.transport.PostJSON(ctx, registerPath, reg, &resp, api.WithTimeout(a.timeout)); err != nil {
		return nil, a.fail(ctx, "register", err)
	}

	a.log.Info(ctx, "registration succeeded", "user_id", resp.UserID)

	return &models.RegisterResult{Success: true, Message: resp.Message, UserID: resp.UserID}, nil
}

// Ping calls GET / and returns the server banner.
func (a *authService) Ping(ctx context.Context) (string, error) {
	var root models.Root
	if err := a.transport.GetJSON(ctx, "/", &root, api.WithTimeout(a.timeout)); err != nil {
		return "", err
	}
	return root.Message + " " + root.Version, nil
}

// fail converts any failure into an AuthError. The server's detail is
// passed through; everything else gets the generic message so transport
// text never reaches the user.
func (a *authService) fail(ctx context.Context, op string, err error) error {
	msg := common.GenericNetworkMessage
	var serverErr *common.ServerError
	if errors.As(err, &serverErr) && serverErr.Detail != "" {
		msg = serverErr.Detail
	}
	a.log.Warn(ctx, op+" failed", "error", err)
	return &common.AuthError{Message: msg, Err: err}
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/natman/internal/client/models"
	"github.com/dmitrijs2005/natman/internal/common"
	"github.com/dmitrijs2005/natman/internal/logging"
)

var sampleRegistration = models.Registration{
	Username:    "a@b.com",
	Password:    "x",
	FirstName:   "A",
	Surname:     "B",
	Age:         25,
	Mail:        "a@b.com",
	PhoneNumber: "+79990000000",
}

func TestLogin_Success(t *testing.T) {
	var got models.Credentials
	c := newAPI(t, func(r *mux.Router) {
		r.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&got)
			writeJSON(w, http.StatusOK, `{"access_token":"t1","token_type":"bearer","user_id":1,
				"username":"a@b.com","first_name":"A","surname":"B","role":"user"}`)
		}).Methods(http.MethodPost)
	})

	svc := NewAuthService(c, 10*time.Second, logging.Nop())
	res, err := svc.Login(context.Background(), "a@b.com", "x")
	require.NoError(t, err)

	want := &models.LoginResult{
		Success: true,
		Token:   "t1",
		User:    models.User{ID: 1, Username: "a@b.com", FirstName: "A", Surname: "B", Role: "user"},
		Message: LoginSuccessMessage,
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Fatalf("login result mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, models.Credentials{Username: "a@b.com", Password: "x"}, got)
}

func TestLogin_ServerDetailIsTheMessage(t *testing.T) {
	c := newAPI(t, func(r *mux.Router) {
		r.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, `{"detail":"Неверное имя пользователя или пароль"}`)
		}).Methods(http.MethodPost)
	})

	_, err := NewAuthService(c, time.Second, nil).Login(context.Background(), "a@b.com", "bad")
	require.Error(t, err)

	var authErr *common.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Неверное имя пользователя или пароль", err.Error())

	var serverErr *common.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusUnauthorized, serverErr.Status)
}

func TestLogin_NetworkFailureUsesGenericMessage(t *testing.T) {
	_, err := NewAuthService(unreachableAPI(t), time.Second, nil).Login(context.Background(), "a@b.com", "x")
	require.Error(t, err)

	assert.Equal(t, common.GenericNetworkMessage, err.Error())
	assert.NotContains(t, err.Error(), "dial tcp")
	assert.ErrorIs(t, err, errDial)
}

func TestLogin_ServerErrorWithoutDetail(t *testing.T) {
	c := newAPI(t, func(r *mux.Router) {
		r.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusInternalServerError, `oops`)
		}).Methods(http.MethodPost)
	})

	_, err := NewAuthService(c, time.Second, nil).Login(context.Background(), "a@b.com", "x")
	require.Error(t, err)
	assert.Equal(t, common.GenericNetworkMessage, err.Error())
}

func TestLogin_MissingTokenIsFailure(t *testing.T) {
	c := newAPI(t, func(r *mux.Router) {
		r.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"user_id":1,"username":"a@b.com"}`)
		}).Methods(http.MethodPost)
	})

	_, err := NewAuthService(c, time.Second, nil).Login(context.Background(), "a@b.com", "x")
	var authErr *common.AuthError
	require.ErrorAs(t, err, &authErr)
}

func TestLogin_TimesOut(t *testing.T) {
	c := newAPI(t, func(r *mux.Router) {
		r.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}).Methods(http.MethodPost)
	})

	_, err := NewAuthService(c, 50*time.Millisecond, nil).Login(context.Background(), "a@b.com", "x")
	require.Error(t, err)
	assert.Equal(t, common.GenericNetworkMessage, err.Error())

	var netErr *common.NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestLogin_InvalidInputMakesNoRequest(t *testing.T) {
	ft := &fakeTransport{}
	_, err := NewAuthService(ft, time.Second, nil).Login(context.Background(), " ", "x")

	var vErr *common.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "username", vErr.Field)
	assert.Empty(t, ft.posts)
}

func TestRegister_Success(t *testing.T) {
	var got models.Registration
	c := newAPI(t, func(r *mux.Router) {
		r.HandleFunc("/users/", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&got)
			writeJSON(w, http.StatusOK, `{"message":"ok","user_id":1}`)
		}).Methods(http.MethodPost)
	})

	res, err := NewAuthService(c, time.Second, nil).Register(context.Background(), sampleRegistration)
	require.NoError(t, err)
	assert.Equal(t, &models.RegisterResult{Success: true, Message: "ok", UserID: 1}, res)
	assert.Equal(t, sampleRegistration, got)
}

func TestRegister_DetailAndNetworkFailures(t *testing.T) {
	c := newAPI(t, func(r *mux.Router) {
		r.HandleFunc("/users/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, `{"detail":"Пользователь с таким именем или email уже существует"}`)
		}).Methods(http.MethodPost)
	})

	_, err := NewAuthService(c, time.Second, nil).Register(context.Background(), sampleRegistration)
	require.Error(t, err)
	assert.Equal(t, "Пользователь с таким именем или email уже существует", err.Error())

	_, err = NewAuthService(unreachableAPI(t), time.Second, nil).Register(context.Background(), sampleRegistration)
	require.Error(t, err)
	assert.Equal(t, common.GenericNetworkMessage, err.Error())
}

func TestRegister_InvalidInputMakesNoRequest(t *testing.T) {
	ft := &fakeTransport{}
	reg := sampleRegistration
	reg.Age = 0

	_, err := NewAuthService(ft, time.Second, nil).Register(context.Background(), reg)
	var vErr *common.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "age", vErr.Field)
	assert.Empty(t, ft.posts)
}

func TestPing(t *testing.T) {
	c := newAPI(t, func(r *mux.Router) {
		r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"message":"NetMan API","version":"1.0.0"}`)
		}).Methods(http.MethodGet)
	})

	banner, err := NewAuthService(c, time.Second, nil).Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "NetMan API 1.0.0", banner)

	_, err = NewAuthService(unreachableAPI(t), time.Second, nil).Ping(context.Background())
	assert.True(t, errors.Is(err, errDial))
}

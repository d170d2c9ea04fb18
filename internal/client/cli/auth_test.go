package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/natman/internal/client/models"
	"github.com/dmitrijs2005/natman/internal/client/services"
	"github.com/dmitrijs2005/natman/internal/client/session"
	"github.com/dmitrijs2005/natman/internal/client/storage"
	"github.com/dmitrijs2005/natman/internal/common"
)

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

const loginOK = `{"access_token":"t1","user_id":1,"username":"a@b.com","first_name":"A","surname":"B","role":"user"}`

func TestLogin_SuccessEstablishesSession(t *testing.T) {
	var creds models.Credentials
	env := newTestEnv(t, "a@b.com\nx\n", func(r *mux.Router) {
		r.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&creds)
			writeJSON(w, http.StatusOK, loginOK)
		}).Methods(http.MethodPost)
	})
	env.app.gate.Decide(context.Background())

	require.NoError(t, env.app.Login(context.Background()))

	assert.Equal(t, models.Credentials{Username: "a@b.com", Password: "x"}, creds)
	assert.Contains(t, env.out.String(), "[Success]\nLogin successful")
	assert.Equal(t, session.StateAuthenticated, env.app.gate.State())

	raw, err := env.store.Get(context.Background(), storage.KeyUserToken)
	require.NoError(t, err)
	assert.Equal(t, "t1", string(raw))
}

func TestLogin_ServerDetailShownInAlert(t *testing.T) {
	env := newTestEnv(t, "a@b.com\nbad\n", func(r *mux.Router) {
		r.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, `{"detail":"Неверное имя пользователя или пароль"}`)
		}).Methods(http.MethodPost)
	})
	env.app.gate.Decide(context.Background())

	err := env.app.Login(context.Background())
	require.Error(t, err)
	assert.Contains(t, env.out.String(), "[Error]\nНеверное имя пользователя или пароль")
	assert.Equal(t, session.StateUnauthenticated, env.app.gate.State())
}

func TestLogin_NetworkFailureShowsGenericMessage(t *testing.T) {
	env := newUnreachableEnv(t, "a@b.com\nx\n", "demo")
	env.app.gate.Decide(context.Background())

	require.Error(t, env.app.Login(context.Background()))
	assert.Contains(t, env.out.String(), "[Error]\n"+common.GenericNetworkMessage)
	assert.NotContains(t, env.out.String(), "connection refused")
}

func TestRegister_AutoLogin(t *testing.T) {
	var reg models.Registration
	env := newTestEnv(t, "Иван Петров\na@b.com\nx\n\n\n", func(r *mux.Router) {
		r.HandleFunc("/users/", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&reg)
			writeJSON(w, http.StatusOK, `{"message":"ok","user_id":1}`)
		}).Methods(http.MethodPost)
		r.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, loginOK)
		}).Methods(http.MethodPost)
	})
	env.app.gate.Decide(context.Background())

	require.NoError(t, env.app.Register(context.Background()))

	assert.Equal(t, models.Registration{
		Username:    "a@b.com",
		Password:    "x",
		FirstName:   "Иван",
		Surname:     "Петров",
		Age:         defaultAge,
		Mail:        "a@b.com",
		PhoneNumber: defaultPhone,
	}, reg)
	assert.Contains(t, env.out.String(), "Registration successful!")
	assert.True(t, env.app.isLoggedIn())
}

func TestRegister_SingleNameGetsDefaultSurname(t *testing.T) {
	var reg models.Registration
	env := newTestEnv(t, "Иван\na@b.com\nx\n30\n+7 999 123 45 67\n", func(r *mux.Router) {
		r.HandleFunc("/users/", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&reg)
			writeJSON(w, http.StatusOK, `{"message":"ok","user_id":1}`)
		}).Methods(http.MethodPost)
		r.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, loginOK)
		}).Methods(http.MethodPost)
	})
	env.app.gate.Decide(context.Background())

	require.NoError(t, env.app.Register(context.Background()))
	assert.Equal(t, "User", reg.Surname)
	assert.Equal(t, 30, reg.Age)
	assert.Equal(t, "+7 999 123 45 67", reg.PhoneNumber)
}

func TestRegister_LoginFailsAfterwards(t *testing.T) {
	env := newTestEnv(t, "A B\na@b.com\nx\n\n\n", func(r *mux.Router) {
		r.HandleFunc("/users/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"message":"ok","user_id":1}`)
		}).Methods(http.MethodPost)
		r.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusInternalServerError, `{"detail":"boom"}`)
		}).Methods(http.MethodPost)
	})
	env.app.gate.Decide(context.Background())

	require.NoError(t, env.app.Register(context.Background()))
	assert.Contains(t, env.out.String(), "Registration successful! Please login manually.")
	assert.False(t, env.app.isLoggedIn())
}

func TestRegister_InvalidInputMakesNoRequest(t *testing.T) {
	env := newTestEnv(t, "A B\na@b.com\nx\nold\n\n", nil)

	require.Error(t, env.app.Register(context.Background()))
	assert.Contains(t, env.out.String(), "[Registration Error]\nage: must be a number")
	assert.Zero(t, env.hits.Load())

	env = newTestEnv(t, "A B\nnot-an-email\nx\n\n\n", nil)
	require.Error(t, env.app.Register(context.Background()))
	assert.Contains(t, env.out.String(), "[Registration Error]\nmail:")
	assert.Zero(t, env.hits.Load())
}

func TestLogout_Confirmed(t *testing.T) {
	env := newTestEnv(t, "y\n", nil)
	env.signIn(t)

	require.NoError(t, env.app.Logout(context.Background()))

	assert.Equal(t, session.StateUnauthenticated, env.app.gate.State())
	raw, err := env.store.Get(context.Background(), storage.KeyUserData)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestLogout_Cancelled(t *testing.T) {
	env := newTestEnv(t, "n\n", nil)
	env.signIn(t)

	require.NoError(t, env.app.Logout(context.Background()))
	assert.True(t, env.app.isLoggedIn())
	assert.Contains(t, env.out.String(), "Отмена")
}

func TestPing(t *testing.T) {
	env := newTestEnv(t, "", func(r *mux.Router) {
		r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"message":"NetMan API","version":"1.0.0"}`)
		}).Methods(http.MethodGet)
	})

	require.NoError(t, env.app.Ping(context.Background()))
	assert.Contains(t, env.out.String(), "Server is up: NetMan API 1.0.0")
}

// lockedStore fails every transactional write.
type lockedStore struct {
	*storage.MemoryStore
}

func (lockedStore) Update(context.Context, func(ctx context.Context, tx storage.KV) error) error {
	return &common.StorageError{Op: "begin", Err: errors.New("database is locked")}
}

func TestLogin_StoreFailureShowsFixedMessage(t *testing.T) {
	env := newTestEnv(t, "a@b.com\nx\n", func(r *mux.Router) {
		r.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, loginOK)
		}).Methods(http.MethodPost)
	})
	holder := session.NewHolder(lockedStore{MemoryStore: storage.NewMemoryStore()}, nil)
	env.app.flow = services.NewFlow(env.app.authService, holder, nil)

	require.Error(t, env.app.Login(context.Background()))
	assert.Contains(t, env.out.String(), "[Error]\n"+common.StorageFailureMessage)
	assert.NotContains(t, env.out.String(), "database is locked")
	_, ok := holder.Current()
	assert.False(t, ok)
}

package authapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Promedio-api/internal/application/dto"
	"github.com/jhoicas/Promedio-api/internal/domain"
	"github.com/jhoicas/Promedio-api/internal/infrastructure/authapi"
)

func TestLogin_Exitoso(t *testing.T) {
	var got dto.LoginRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"tok-123","username":"admin"}`))
	}))
	defer srv.Close()

	out, err := authapi.NewClient(srv.URL+"/", time.Second).Login(context.Background(),
		dto.LoginRequest{Username: "admin", Password: "admin123", Remember: true})
	require.NoError(t, err)

	assert.Equal(t, "tok-123", out.Token)
	assert.Equal(t, "admin", out.Username)
	assert.Equal(t, dto.LoginRequest{Username: "admin", Password: "admin123", Remember: true}, got)
}

func TestLogin_CredencialesRechazadas(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"usuario o contraseña incorrectos"}`))
	}))
	defer srv.Close()

	_, err := authapi.NewClient(srv.URL, time.Second).Login(context.Background(), dto.LoginRequest{Username: "a", Password: "b"})
	require.Error(t, err)

	var authErr *domain.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, http.StatusUnauthorized, authErr.Status)
	assert.Equal(t, "usuario o contraseña incorrectos", err.Error())
	assert.ErrorIs(t, err, domain.ErrAuthentication)
}

func TestLogin_RechazoSinMensajeUsaElPorDefecto(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()

	_, err := authapi.NewClient(srv.URL, time.Second).Login(context.Background(), dto.LoginRequest{Username: "a", Password: "b"})
	assert.ErrorIs(t, err, domain.ErrAuthentication)
	assert.Equal(t, domain.ErrAuthentication.Error(), err.Error())
}

func TestLogin_CuerpoIlegible(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`no-json`))
	}))
	defer srv.Close()

	_, err := authapi.NewClient(srv.URL, time.Second).Login(context.Background(), dto.LoginRequest{Username: "a", Password: "b"})
	assert.ErrorIs(t, err, domain.ErrNetwork)
}

func TestLogin_ServidorCaido(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := authapi.NewClient(url, time.Second).Login(context.Background(), dto.LoginRequest{Username: "a", Password: "b"})
	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.NotErrorIs(t, err, domain.ErrAuthentication)
}

func TestLogin_ContextoCancelado(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	// LIFO: se libera el handler antes de cerrar el servidor.
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := authapi.NewClient(srv.URL, 5*time.Second).Login(ctx, dto.LoginRequest{Username: "a", Password: "b"})
	assert.ErrorIs(t, err, domain.ErrNetwork)
}

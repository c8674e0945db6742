// Package authapi cliente HTTP del servicio de autenticación (POST /api/login).
package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/Promedio-api/internal/application/dto"
	"github.com/jhoicas/Promedio-api/internal/application/ports"
	"github.com/jhoicas/Promedio-api/internal/domain"
)

// Verificar en tiempo de compilación que Client implementa AuthGateway.
var _ ports.AuthGateway = (*Client)(nil)

const loginPath = "/api/login"

// Client adaptador de AuthGateway sobre net/http.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el cliente. timeout <= 0 usa 10 s.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type errorBody struct {
	Message string `json:"message"`
}

// Login envía {username, password, remember} como JSON. Una sola petición.
//   - fallo de transporte o cuerpo 2xx ilegible: domain.ErrNetwork
//   - status fuera de 2xx: *domain.AuthError con el message del servidor
func (c *Client) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("authapi: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("%w: leer respuesta: %v", domain.ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(rawBody, &eb) // cuerpo opcional
		return nil, &domain.AuthError{Status: resp.StatusCode, Message: eb.Message}
	}

	var out dto.LoginResponse
	if err := json.Unmarshal(rawBody, &out); err != nil {
		return nil, fmt.Errorf("%w: respuesta ilegible: %v", domain.ErrNetwork, err)
	}
	return &out, nil
}

package identity_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zxcv616/WavHaven/pkg/identity"
)

func TestClient_SignUp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/v1/signup", r.URL.Path)
		assert.Equal(t, "service-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice@example.com", body["email"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"id": "remote-id-123"})
	}))
	defer server.Close()

	client := identity.NewClient(server.URL, "service-key")
	id, err := client.SignUp(context.Background(), "alice@example.com", "password123")
	assert.NoError(t, err)
	assert.Equal(t, "remote-id-123", id)
}

func TestClient_SignUp_NestedUserShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"user": map[string]string{"id": "remote-id-456"},
		})
	}))
	defer server.Close()

	client := identity.NewClient(server.URL, "service-key")
	id, err := client.SignUp(context.Background(), "alice@example.com", "password123")
	assert.NoError(t, err)
	assert.Equal(t, "remote-id-456", id)
}

func TestClient_SignUp_DomainRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"msg": "User already registered"})
	}))
	defer server.Close()

	client := identity.NewClient(server.URL, "service-key")
	_, err := client.SignUp(context.Background(), "taken@example.com", "password123")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "User already registered")
}

func TestClient_SignUp_NoIdentityInResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	client := identity.NewClient(server.URL, "service-key")
	_, err := client.SignUp(context.Background(), "alice@example.com", "password123")
	assert.Error(t, err)
}

func TestClient_SignUp_MissingCredentials(t *testing.T) {
	client := identity.NewClient("", "")
	_, err := client.SignUp(context.Background(), "alice@example.com", "password123")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

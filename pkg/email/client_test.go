package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rassdread/homecheff-backend/pkg/config"
)

func TestSendBuildsSendGridPayload(t *testing.T) {
	var captured sendRequest
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client, err := NewClient(config.SendgridConfig{
		APIKey:      "SG.test-key",
		DefaultFrom: "noreply@homecheff.nl",
	}, WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	err = client.Send(context.Background(), Message{
		To:       "buyer@example.com",
		ToName:   "Buyer",
		Subject:  "Je bestelling is bezorgd",
		TextBody: "Laat een review achter.",
		HTMLBody: "<p>Laat een review achter.</p>",
	})
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	if authHeader != "Bearer SG.test-key" {
		t.Fatalf("unexpected authorization header %q", authHeader)
	}
	if captured.From.Email != "noreply@homecheff.nl" {
		t.Fatalf("unexpected from address %q", captured.From.Email)
	}
	if len(captured.Personalizations) != 1 || len(captured.Personalizations[0].To) != 1 {
		t.Fatalf("expected one recipient, got %+v", captured.Personalizations)
	}
	if got := captured.Personalizations[0].To[0].Email; got != "buyer@example.com" {
		t.Fatalf("unexpected recipient %q", got)
	}
	if len(captured.Content) != 2 || captured.Content[0].Type != "text/plain" {
		t.Fatalf("expected text/plain first, got %+v", captured.Content)
	}
}

func TestSendRejectsMissingRecipient(t *testing.T) {
	client, err := NewClient(config.SendgridConfig{APIKey: "SG.test-key"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if err := client.Send(context.Background(), Message{Subject: "x", TextBody: "y"}); err == nil {
		t.Fatal("expected validation error for missing recipient")
	}
}

func TestSendSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":[{"message":"bad request"}]}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client, err := NewClient(config.SendgridConfig{
		APIKey:      "SG.test-key",
		DefaultFrom: "noreply@homecheff.nl",
	}, WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	err = client.Send(context.Background(), Message{
		To:       "buyer@example.com",
		Subject:  "x",
		TextBody: "y",
	})
	if err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

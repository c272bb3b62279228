package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClassifyText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/classify" {
			t.Errorf("Expected /classify, got %s", r.URL.Path)
		}

		var req textRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.Text != "hello there" {
			t.Errorf("Expected input echo, got %q", req.Text)
		}

		w.Write([]byte(`{"emotions":[{"label":"joy","score":0.9},{"label":"neutral","score":0.1}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")

	scores, err := client.ClassifyText(context.Background(), "hello there")
	if err != nil {
		t.Fatalf("ClassifyText failed: %v", err)
	}

	if len(scores) != 2 || scores[0].Label != "joy" || scores[0].Score != 0.9 {
		t.Errorf("Unexpected scores: %v", scores)
	}
}

func TestClassifyImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/classify-image" {
			t.Errorf("Expected /classify-image, got %s", r.URL.Path)
		}

		var req imageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.Image == "" {
			t.Error("Expected base64 frame payload")
		}

		w.Write([]byte(`{"emotions":[{"label":"surprise","score":1}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")

	scores, err := client.ClassifyImage(context.Background(), []byte{0x01, 0x02})
	if err != nil {
		t.Fatalf("ClassifyImage failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Label != "surprise" {
		t.Errorf("Unexpected scores: %v", scores)
	}
}

func TestClassifyText_DecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")

	_, err := client.ClassifyText(context.Background(), "hello")
	if !errors.Is(err, ErrDecode) {
		t.Errorf("Expected ErrDecode, got %v", err)
	}
}

func TestClassifyText_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")

	_, err := client.ClassifyText(context.Background(), "hello")

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Expected StatusError, got %v", err)
	}
	if statusErr.Status != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", statusErr.Status)
	}
}

func TestLoad(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/load" {
			t.Errorf("Expected /load, got %s", r.URL.Path)
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "custom-checkpoint")

	if err := client.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
}

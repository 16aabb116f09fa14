package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/keerthana/hushtone/internal/auth"
	"github.com/keerthana/hushtone/internal/capture"
	"github.com/keerthana/hushtone/internal/detector"
	"github.com/keerthana/hushtone/internal/meaning"
	"github.com/keerthana/hushtone/internal/pipeline"
	"github.com/keerthana/hushtone/internal/server"
	"github.com/keerthana/hushtone/internal/store"
	"github.com/keerthana/hushtone/internal/translate"
	"github.com/keerthana/hushtone/internal/tts"
)

func TestE2E_CompleteWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	st, err := store.New(filepath.Join(t.TempDir(), "data.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer st.Close()

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()
	camera := capture.NewMockCamera([]*gocv.Mat{&frame}, true)
	det := detector.NewMockDetector()

	resolver := meaning.New(st.Meanings(), translate.Default())
	pipe := pipeline.New(pipeline.Config{
		Camera:   camera,
		Detector: det,
		Events:   st.Events(),
		Resolver: resolver,
		FPS:      30,
		Cooldown: 50 * time.Millisecond,
	})
	defer pipe.Stop()

	srv := server.New(server.Config{
		Store:         st,
		Pipeline:      pipe,
		Resolver:      resolver,
		Tokens:        auth.NewTokenManager("e2e-secret", time.Hour),
		TTS:           tts.New([]string{"en"}, nil),
		AdminUsername: "admin",
		AdminPassword: "admin123",
	})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	postJSON := func(t *testing.T, path, token string, body interface{}) *http.Response {
		t.Helper()
		var buf bytes.Buffer
		if body != nil {
			json.NewEncoder(&buf).Encode(body)
		}
		req, _ := http.NewRequest(http.MethodPost, ts.URL+path, &buf)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("POST %s error = %v", path, err)
		}
		return resp
	}

	getJSON := func(t *testing.T, path, token string, out interface{}) int {
		t.Helper()
		req, _ := http.NewRequest(http.MethodGet, ts.URL+path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("GET %s error = %v", path, err)
		}
		defer resp.Body.Close()
		if out != nil {
			json.NewDecoder(resp.Body).Decode(out)
		}
		return resp.StatusCode
	}

	var userToken, adminToken string
	var meaningID int64

	t.Run("Signup", func(t *testing.T) {
		resp := postJSON(t, "/api/auth/signup", "", map[string]interface{}{
			"username": "asha",
			"email":    "asha@example.com",
			"password": "secret123",
			"name":     "Asha",
			"city":     "Kochi",
		})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("signup status = %d", resp.StatusCode)
		}
		var session struct {
			Token string `json:"token"`
		}
		json.NewDecoder(resp.Body).Decode(&session)
		if session.Token == "" {
			t.Fatal("expected a session token")
		}
		userToken = session.Token
	})

	t.Run("AdminLogin", func(t *testing.T) {
		resp := postJSON(t, "/api/auth/admin/login", "", map[string]string{
			"username": "admin",
			"password": "admin123",
		})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("admin login status = %d", resp.StatusCode)
		}
		var session struct {
			Token string `json:"token"`
		}
		json.NewDecoder(resp.Body).Decode(&session)
		adminToken = session.Token
	})

	t.Run("GestureCatalog", func(t *testing.T) {
		var resp struct {
			Gestures []struct {
				ID string `json:"id"`
			} `json:"gestures"`
		}
		if code := getJSON(t, "/api/gestures", "", &resp); code != http.StatusOK {
			t.Fatalf("catalog status = %d", code)
		}
		if len(resp.Gestures) == 0 {
			t.Fatal("expected a non-empty gesture catalog")
		}
	})

	t.Run("SubmitMeaning", func(t *testing.T) {
		resp := postJSON(t, "/api/meanings", userToken, map[string]string{
			"gesture": "thumbs_up",
			"meaning": "I am fine",
		})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("submit status = %d", resp.StatusCode)
		}
		var submitted struct {
			ID     int64  `json:"id"`
			Status string `json:"status"`
		}
		json.NewDecoder(resp.Body).Decode(&submitted)
		if submitted.Status != "pending" {
			t.Errorf("status = %s, want pending", submitted.Status)
		}
		meaningID = submitted.ID
	})

	t.Run("ApproveMeaning", func(t *testing.T) {
		resp := postJSON(t, fmt.Sprintf("/api/admin/meanings/%d/approve", meaningID), adminToken, nil)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("approve status = %d", resp.StatusCode)
		}
	})

	t.Run("RecognizeSign", func(t *testing.T) {
		det.SetHands([]detector.HandLandmarks{detector.ThumbsUpLandmarks()})

		resp := postJSON(t, "/api/capture/start", userToken, nil)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("start status = %d", resp.StatusCode)
		}

		deadline := time.Now().Add(3 * time.Second)
		for {
			var status struct {
				Gesture string `json:"gesture"`
				Text    string `json:"text"`
			}
			getJSON(t, "/api/status", userToken, &status)
			if status.Gesture == "thumbs_up" {
				if status.Text != "I am fine" {
					t.Errorf("text = %q, want the approved custom meaning", status.Text)
				}
				break
			}
			if time.Now().After(deadline) {
				t.Fatal("thumbs_up was never recognized")
			}
			time.Sleep(50 * time.Millisecond)
		}

		resp = postJSON(t, "/api/capture/stop", userToken, nil)
		resp.Body.Close()
	})

	t.Run("History", func(t *testing.T) {
		var resp struct {
			History []struct {
				Gesture string `json:"gesture"`
				Text    string `json:"text"`
			} `json:"history"`
		}
		if code := getJSON(t, "/api/history", userToken, &resp); code != http.StatusOK {
			t.Fatalf("history status = %d", code)
		}
		if len(resp.History) == 0 {
			t.Fatal("expected recognized signs in history")
		}
		if resp.History[0].Gesture != "thumbs_up" || resp.History[0].Text != "I am fine" {
			t.Errorf("history[0] = %+v", resp.History[0])
		}
	})

	t.Run("SpeakUnsupportedLanguage", func(t *testing.T) {
		var resp struct {
			Status string `json:"status"`
		}
		if code := getJSON(t, "/api/speak?text=hello&lang=fr", "", &resp); code != http.StatusOK {
			t.Fatalf("speak status = %d", code)
		}
		if resp.Status != "unsupported" {
			t.Errorf("status = %q, want unsupported", resp.Status)
		}
	})
}

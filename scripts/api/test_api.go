// Minimal end-to-end integration test for the FactLens API.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

var (
	baseURL = getenv("API_URL", "http://localhost:8080/v1")
	apiKey  = getenv("API_KEY", "")
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	if apiKey == "" {
		log.Fatal("API_KEY must be set")
	}

	token := fetchToken()
	id := createAnalysis(token)
	listAnalyses(token, id)
	getAnalysis(token, id)

	fmt.Println("all endpoints passed")
}

func fetchToken() string {
	var resp struct{ Token string }
	doJSON("POST", "/auth/token", "", map[string]any{"api_key": apiKey}, &resp, http.StatusOK)
	if resp.Token == "" {
		log.Fatal("auth/token: empty token")
	}
	return resp.Token
}

func createAnalysis(token string) string {
	var resp struct {
		ID string `json:"id"`
	}
	doJSON("POST", "/analyses", token, map[string]any{
		"input": "The Eiffel Tower is 330 meters tall. It was completed in 1889.",
	}, &resp, http.StatusOK)
	if resp.ID == "" {
		log.Fatal("analyses: empty id")
	}
	fmt.Printf("created analysis %s\n", resp.ID)
	return resp.ID
}

func listAnalyses(token, wantID string) {
	var resp struct {
		Analyses []struct {
			ID string `json:"ID"`
		} `json:"analyses"`
	}
	doJSON("GET", "/analyses", token, nil, &resp, http.StatusOK)
	for _, a := range resp.Analyses {
		if a.ID == wantID {
			return
		}
	}
	log.Fatalf("analyses list: id %s not found", wantID)
}

func getAnalysis(token, id string) {
	var resp struct {
		ID           string `json:"ID"`
		OverallScore int    `json:"OverallScore"`
	}
	doJSON("GET", "/analyses/"+id, token, nil, &resp, http.StatusOK)
	if resp.ID != id {
		log.Fatalf("analyses/%s: got id %q", id, resp.ID)
	}
	fmt.Printf("analysis %s scored %d/100\n", id, resp.OverallScore)
}

func doJSON(method, path, token string, payload, out any, wantStatus int) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			log.Fatalf("%s %s: marshal: %v", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		log.Fatalf("%s %s: %v", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 6 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != wantStatus {
		log.Fatalf("%s %s: status %d, body: %s", method, path, resp.StatusCode, raw)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			log.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
}

// Command simulation drives a running server through one solver round and
// one chat round over HTTP.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
)

type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type solverSession struct {
	Id      string `json:"id"`
	Pending bool   `json:"pending"`
	Current *struct {
		Subject string   `json:"subject"`
		Answer  string   `json:"answer"`
		Steps   []string `json:"steps"`
	} `json:"current"`
}

type chatSession struct {
	Id       string `json:"id"`
	Messages []struct {
		Role    string   `json:"role"`
		Content string   `json:"content"`
		Sources []string `json:"sources"`
	} `json:"messages"`
}

type client struct {
	baseURL string
	http    *http.Client
}

func call[T any](c *client, method, path string, body any) (T, error) {
	var zero T
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return zero, err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return zero, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	var env envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return zero, fmt.Errorf("%s %s: decode: %w", method, path, err)
	}
	if !env.Success {
		return zero, fmt.Errorf("%s %s: %d %s", method, path, resp.StatusCode, env.Message)
	}
	return env.Data, nil
}

func main() {
	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000/api"
	}
	c := &client{baseURL: baseURL, http: &http.Client{Timeout: 30 * time.Second}}

	color.Cyan("=== Solver round ===")
	s, err := call[solverSession](c, http.MethodPost, "/solver/v1/sessions", nil)
	exitOn(err)
	s, err = call[solverSession](c, http.MethodPost, "/solver/v1/sessions/"+s.Id+"/solve", map[string]any{
		"subject":  "math",
		"question": "2x + 3 = 13",
		"wait":     true,
	})
	exitOn(err)
	if s.Current == nil {
		color.Red("solution still pending")
		os.Exit(1)
	}
	color.Green("[%s] %s", s.Current.Subject, s.Current.Answer)
	for _, step := range s.Current.Steps {
		color.Yellow("  %s", step)
	}

	color.Cyan("\n=== Chat round ===")
	ch, err := call[chatSession](c, http.MethodPost, "/chat/v1/sessions", nil)
	exitOn(err)
	ch, err = call[chatSession](c, http.MethodPost, "/chat/v1/sessions/"+ch.Id+"/send", map[string]any{
		"text": "Что такое квантовая запутанность?",
		"wait": true,
	})
	exitOn(err)
	for _, m := range ch.Messages {
		color.Green("%s:", m.Role)
		fmt.Println(m.Content)
		if len(m.Sources) > 0 {
			color.Magenta("  %v", m.Sources)
		}
	}
}

func exitOn(err error) {
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
}

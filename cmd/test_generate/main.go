package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"resume-builder/internal/adapter/repository"
	"resume-builder/internal/render"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/ai"
)

// Runs one generate round trip against a local mock generation service and
// prints the merged resume.

func startMockGenerator(addr string) (*http.Server, string, error) {
	mux := http.NewServeMux()
	mux.HandleFunc(ai.GeneratePath, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserDescription string `json:"userDescription"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserDescription == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		// the real service answers with loosely shaped data; mimic that here
		data := map[string]interface{}{
			"personalInformation": map[string]interface{}{
				"fullName": "Test User",
				"email":    "t@example.com",
				"linkedin": "linkedin.com/in/test-user",
			},
			"summary":         "Experienced backend engineer. " + req.UserDescription,
			"experience":      []interface{}{map[string]interface{}{"companyName": "Acme", "position": "Engineer", "duration": "2019-2024"}},
			"education":       map[string]interface{}{"schoolName": "State University", "degree": "BSc", "graduationYear": 2018},
			"skills":          map[string]interface{}{"Backend": []string{"Go", "Python"}, "devops": "Docker"},
			"achievements":    []string{"Cut p99 latency by 40%"},
			"spokenLanguages": "English",
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"think": "backend profile with Python and Go",
			"data":  data,
		})
	})

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, "", err
	}
	srv := &http.Server{Handler: mux}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("mock generator failed", "error", err)
		}
	}()
	return srv, "http://" + ln.Addr().String(), nil
}

func main() {
	addr := flag.String("addr", "127.0.0.1:0", "mock generation service listen address")
	desc := flag.String("desc", "Senior backend engineer, 5 years, Python and Go", "user description")
	html := flag.Bool("html", false, "print HTML instead of text")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	srv, url, err := startMockGenerator(*addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "start mock generator: %v\n", err)
		os.Exit(2)
	}
	defer srv.Shutdown(context.Background())

	client := ai.NewClient(url, 10*time.Second)
	client.Logger = log
	processor := usecase.NewProcessor(client, repository.NewSessionsRepo(), nil, log)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	s, err := processor.Start(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "start session: %v\n", err)
		os.Exit(1)
	}
	if _, err := processor.Generate(ctx, s.ID, *desc); err != nil {
		fmt.Fprintf(os.Stderr, "generate failed: %v\n", err)
		os.Exit(1)
	}
	tree, err := processor.Render(ctx, s.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(1)
	}

	if *html {
		err = render.HTML(os.Stdout, tree)
	} else {
		err = render.Text(os.Stdout, tree)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		os.Exit(1)
	}
}

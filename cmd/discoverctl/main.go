// cmd/discoverctl is a thin Cobra CLI front-end that talks to
// discoveryd's HTTP boundary — the reference implementation of the
// "CLI surface" collaborator spec.md section 6 names, not a complete
// UX. Command shape (a cobra.Command root with one subcommand per verb,
// each issuing a plain net/http call against the daemon) is grounded on
// ehrlich-b-wingthing's cmd/wt/main.go.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func main() {
	var serverURL string
	var token string

	root := &cobra.Command{
		Use:   "discoverctl",
		Short: "discoverctl — CLI front-end for the algebraic structure discovery engine",
	}
	root.PersistentFlags().StringVar(&serverURL, "server", envOrDefault("DISCOVERY_SERVER_URL", "http://localhost:8080"), "discoveryd base URL")
	root.PersistentFlags().StringVar(&token, "token", os.Getenv("DISCOVERY_AUTH_TOKEN"), "bearer auth token")

	root.AddCommand(
		listStructuresCmd(&serverURL, &token),
		exploreCmd(&serverURL, &token),
		inspectCmd(&serverURL, &token),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type apiClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func newAPIClient(baseURL, token string) *apiClient {
	return &apiClient{baseURL: baseURL, token: token, http: &http.Client{Timeout: 30 * time.Second}}
}

func (c *apiClient) do(method, path string, body any) (map[string]any, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return out, fmt.Errorf("%s %s: status %d: %v", method, path, resp.StatusCode, out["error"])
	}
	return out, nil
}

func listStructuresCmd(serverURL, token *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list-structures",
		Short: "list the known-structures catalog discoveryd starts exploring from",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newAPIClient(*serverURL, *token)
			body, err := c.do(http.MethodGet, "/v1/structures", nil)
			if err != nil {
				return err
			}
			structures, _ := body["structures"].([]any)
			for _, s := range structures {
				fmt.Println(s)
			}
			return nil
		},
	}
}

func exploreCmd(serverURL, token *string) *cobra.Command {
	var seeds []string
	var depth int

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "start an exploration run and print its run ID",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newAPIClient(*serverURL, *token)
			req := map[string]any{"seeds": seeds, "depth": depth}
			body, err := c.do(http.MethodPost, "/v1/explore", req)
			if err != nil {
				return err
			}
			fmt.Printf("run started: %v (status: %v)\n", body["runId"], body["status"])
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&seeds, "seeds", nil, "catalog seed names to start from (default: all)")
	cmd.Flags().IntVar(&depth, "depth", 0, "iterative-deepening depth (default: server config)")
	return cmd
}

func inspectCmd(serverURL, token *string) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <run-id>",
		Short: "inspect a run's status and, once complete, its scored candidates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newAPIClient(*serverURL, *token)
			body, err := c.do(http.MethodGet, "/v1/runs/"+args[0], nil)
			if err != nil {
				return err
			}
			encoded, err := json.MarshalIndent(body, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(encoded))
			return nil
		},
	}
}

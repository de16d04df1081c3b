package infrastructure

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const hasuraTimeout = 30 * time.Second

// HasuraClient runs GraphQL queries against a Hasura endpoint
type HasuraClient struct {
	client *resty.Client
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// NewHasuraClient creates a client for baseURL authenticated with the admin secret
func NewHasuraClient(baseURL, adminSecret string) *HasuraClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(hasuraTimeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-hasura-admin-secret", adminSecret)

	return &HasuraClient{client: client}
}

// Execute posts the query and returns the decoded response body, including
// its "data" object. GraphQL errors in the body are returned as an error.
func (c *HasuraClient) Execute(ctx context.Context, query string, variables map[string]any) (map[string]any, error) {
	var result map[string]any

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(graphQLRequest{Query: query, Variables: variables}).
		SetResult(&result).
		Post("/v1/graphql")
	if err != nil {
		return nil, fmt.Errorf("failed to execute graphql query: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("graphql endpoint returned %d: %s", resp.StatusCode(), resp.String())
	}

	if errs := graphQLErrors(result); len(errs) > 0 {
		return nil, fmt.Errorf("graphql query failed: %s", strings.Join(errs, "; "))
	}

	return result, nil
}

func graphQLErrors(result map[string]any) []string {
	raw, ok := result["errors"].([]any)
	if !ok {
		return nil
	}

	messages := make([]string, 0, len(raw))
	for _, e := range raw {
		if m, ok := e.(map[string]any); ok {
			if msg, ok := m["message"].(string); ok {
				messages = append(messages, msg)
				continue
			}
		}
		messages = append(messages, fmt.Sprint(e))
	}
	return messages
}

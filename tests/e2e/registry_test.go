package e2e

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"
)

func TestRegistryCategories(t *testing.T) {
	url := baseURL(t)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(url + "/v1/registry/categories")
	if err != nil {
		t.Fatalf("registry request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var categories []struct {
		ID       string `json:"id"`
		Role     string `json:"role"`
		Redirect string `json:"redirect"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&categories); err != nil {
		t.Fatalf("failed to decode categories: %v", err)
	}
	if len(categories) != 8 {
		t.Errorf("categories = %d, want 8", len(categories))
	}

	for _, c := range categories {
		if c.ID == "municipal" && c.Redirect != "/municipal/dashboard" {
			t.Errorf("municipal redirect = %q, want /municipal/dashboard", c.Redirect)
		}
		if c.ID == "individual-tenant" && c.Role != "user" {
			t.Errorf("individual-tenant role = %q, want user", c.Role)
		}
	}
}

func TestProtectedEndpointsRequireAuth(t *testing.T) {
	url := baseURL(t)

	client := &http.Client{Timeout: 10 * time.Second}
	for _, path := range []string{"/v1/applications", "/v1/transactions"} {
		resp, err := client.Get(url + path)
		if err != nil {
			t.Fatalf("request to %s failed: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s status = %d, want 401", path, resp.StatusCode)
		}
	}
}

package stockfolio

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCachedClientServesSecondRequestFromDisk(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, `{"answer": 42}`)
	}))
	defer server.Close()

	client := cachedClient()
	for i := 0; i < 2; i++ {
		var data map[string]any
		if err := jwget(client, server.URL+"/cache-test", &data); err != nil {
			t.Fatalf("jwget() call %d = %v", i+1, err)
		}
		if data["answer"] != 42.0 {
			t.Fatalf("jwget() call %d decoded %v", i+1, data)
		}
	}
	if hits != 1 {
		t.Errorf("server hits = %d, want 1", hits)
	}
}

func TestCachedClientSkipsCachingErrors(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := cachedClient()
	var data any
	for i := 0; i < 2; i++ {
		if err := jwget(client, server.URL+"/error-test", &data); err == nil {
			t.Fatalf("jwget() call %d = nil, want error", i+1)
		}
	}
	if hits != 2 {
		t.Errorf("server hits = %d, want 2", hits)
	}
}

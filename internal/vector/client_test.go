// File path: internal/vector/client_test.go
package vector

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeChroma struct {
	mu          sync.Mutex
	collections map[string]string
	upserts     map[string]int
	lastQuery   map[string]interface{}
	queryResult map[string]interface{}
}

func newFakeChroma() *fakeChroma {
	return &fakeChroma{
		collections: make(map[string]string),
		upserts:     make(map[string]int),
	}
}

func (f *fakeChroma) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/heartbeat", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/v1/collections", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			name := r.URL.Query().Get("name")
			type entry struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			}
			out := struct {
				Collections []entry `json:"collections"`
			}{}
			if id, ok := f.collections[name]; ok {
				out.Collections = append(out.Collections, entry{ID: id, Name: name})
			}
			_ = json.NewEncoder(w).Encode(out)
		case http.MethodPost:
			var req struct {
				Name string `json:"name"`
			}
			_ = json.NewDecoder(r.Body).Decode(&req)
			id := "col-" + req.Name
			f.collections[req.Name] = id
			_ = json.NewEncoder(w).Encode(map[string]string{"id": id})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/api/v1/collections/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		path := strings.TrimPrefix(r.URL.Path, "/api/v1/collections/")
		switch {
		case strings.HasSuffix(path, "/upsert"):
			id := strings.TrimSuffix(path, "/upsert")
			var req struct {
				IDs []string `json:"ids"`
			}
			_ = json.NewDecoder(r.Body).Decode(&req)
			f.upserts[id] += len(req.IDs)
			w.WriteHeader(http.StatusOK)
		case strings.HasSuffix(path, "/query"):
			_ = json.NewDecoder(r.Body).Decode(&f.lastQuery)
			if f.queryResult == nil {
				_ = json.NewEncoder(w).Encode(map[string]interface{}{"ids": [][]string{}})
				return
			}
			_ = json.NewEncoder(w).Encode(f.queryResult)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	return mux
}

func testClient(t *testing.T, fake *fakeChroma) *Client {
	t.Helper()
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)
	parsed, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("parsing server url: %v", err)
	}
	cfg := Config{
		Host:    parsed.Hostname(),
		Port:    parsed.Port(),
		Scheme:  "http",
		Timeout: 2 * time.Second,
	}
	cfg.applyDefaults()
	client, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("constructing client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestClientBecomesAvailable(t *testing.T) {
	client := testClient(t, newFakeChroma())
	if !client.Available() {
		t.Fatal("client should be available against a healthy server")
	}
}

func TestClientUnreachableIsNotFatal(t *testing.T) {
	cfg := Config{Host: "127.0.0.1", Port: "1", Scheme: "http", Timeout: 200 * time.Millisecond}
	cfg.applyDefaults()
	client, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unreachable index must not fail construction: %v", err)
	}
	if client.Available() {
		t.Fatal("client should report unavailable")
	}
	if _, err := client.Query(context.Background(), "mentors_all", []float32{0.1}, 5, nil); err == nil {
		t.Fatal("query against unavailable index should error")
	}
}

func TestEnsureNamespaceCreatesCollection(t *testing.T) {
	fake := newFakeChroma()
	client := testClient(t, fake)
	if err := client.EnsureNamespace(context.Background(), "mentors_investor"); err != nil {
		t.Fatalf("ensure namespace failed: %v", err)
	}
	fake.mu.Lock()
	_, created := fake.collections["mentors_investor"]
	fake.mu.Unlock()
	if !created {
		t.Fatal("expected collection to be created")
	}
	// Second call must hit the cache, not fail.
	if err := client.EnsureNamespace(context.Background(), "mentors_investor"); err != nil {
		t.Fatalf("cached ensure failed: %v", err)
	}
}

func TestUpsertWritesRecords(t *testing.T) {
	fake := newFakeChroma()
	client := testClient(t, fake)
	records := []Record{
		{ID: "m1", Document: "investor crypto mentor", Metadata: map[string]interface{}{"archetype": "investor"}},
		{ID: "m2", Document: "developer crypto mentor", Metadata: map[string]interface{}{"archetype": "developer"}},
	}
	vectors := [][]float32{{0.1, 0.2}, {0.3, 0.4}}
	if err := client.Upsert(context.Background(), "mentors_all", records, vectors); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	fake.mu.Lock()
	count := fake.upserts["col-mentors_all"]
	fake.mu.Unlock()
	if count != 2 {
		t.Fatalf("expected 2 upserted records, got %d", count)
	}
}

func TestQueryMapsDistancesToSimilarity(t *testing.T) {
	fake := newFakeChroma()
	fake.queryResult = map[string]interface{}{
		"ids":       [][]string{{"m1", "m2"}},
		"distances": [][]float64{{0.0, 1.0}},
		"metadatas": [][]map[string]interface{}{{
			{"archetype": "investor"},
			{"archetype": "developer"},
		}},
	}
	client := testClient(t, fake)
	points, err := client.Query(context.Background(), "mentors_all", []float32{0.1}, 5, nil)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Score != 1.0 {
		t.Fatalf("distance 0 should map to similarity 1.0, got %f", points[0].Score)
	}
	if points[1].Score != 0.5 {
		t.Fatalf("distance 1 should map to similarity 0.5, got %f", points[1].Score)
	}
	if points[0].Payload["archetype"] != "investor" {
		t.Fatalf("payload not carried through: %v", points[0].Payload)
	}
}

func TestQueryForwardsWhereFilter(t *testing.T) {
	fake := newFakeChroma()
	client := testClient(t, fake)
	filter := map[string]interface{}{"archetype": map[string]interface{}{"$eq": "investor"}}
	if _, err := client.Query(context.Background(), "mentors_investor", []float32{0.1}, 10, filter); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	fake.mu.Lock()
	defer fake.mu.Unlock()
	where, ok := fake.lastQuery["where"].(map[string]interface{})
	if !ok {
		t.Fatalf("where filter not forwarded: %v", fake.lastQuery)
	}
	if _, ok := where["archetype"]; !ok {
		t.Fatalf("archetype predicate missing: %v", where)
	}
	if n, ok := fake.lastQuery["n_results"].(float64); !ok || int(n) != 10 {
		t.Fatalf("n_results not forwarded: %v", fake.lastQuery["n_results"])
	}
}

// File path: internal/vector/client.go
package vector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/novachain/mentormatch/internal/common"
)

// Index is the approximate-nearest-neighbor service consumed by the
// retriever. Namespaces partition the mentor population (one collection per
// archetype plus a shared one); the filter is a conjunction evaluated
// remotely against point metadata.
type Index interface {
	Available() bool
	EnsureNamespace(ctx context.Context, namespace string) error
	Upsert(ctx context.Context, namespace string, records []Record, vectors [][]float32) error
	Query(ctx context.Context, namespace string, vector []float32, topK int, filter map[string]interface{}) ([]Point, error)
}

// Record is one mentor entry written into a namespace.
type Record struct {
	ID       string
	Document string
	Metadata map[string]interface{}
}

// Point is one nearest-neighbor hit.
type Point struct {
	ID      string
	Score   float32
	Payload map[string]interface{}
}

// Client talks the chroma wire protocol to the hosted index. Collections
// back namespaces one-to-one; resolved collection ids are cached per
// namespace.
type Client struct {
	httpClient *http.Client
	transport  *http.Transport

	baseURL   string
	apiKey    string
	available bool

	cfg Config

	mu          sync.RWMutex
	namespaceID map[string]string
}

func NewFromEnv(ctx context.Context) (*Client, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return New(ctx, cfg)
}

// New constructs a client using the provided configuration. An unreachable
// index is not an error: the client is returned unavailable and matching
// degrades to the in-memory fallback.
func New(ctx context.Context, cfg Config) (*Client, error) {
	baseURL := fmt.Sprintf("%s://%s:%s/api/v1", cfg.Scheme, cfg.Host, cfg.Port)
	logger := common.Logger()
	logger.Info(
		"vector: initializing index client",
		"host", cfg.Host,
		"port", cfg.Port,
		"timeout", cfg.Timeout,
	)

	transport := &http.Transport{
		MaxIdleConns:        cfg.HTTPMaxIdleConns,
		MaxIdleConnsPerHost: cfg.HTTPMaxIdlePerHost,
		MaxConnsPerHost:     cfg.HTTPMaxConnsPerHost,
		IdleConnTimeout:     cfg.HTTPIdleConnTimeout,
	}

	client := &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout, Transport: transport},
		transport:   transport,
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      cfg.APIKey,
		cfg:         cfg,
		namespaceID: make(map[string]string),
	}

	if err := client.ensureReady(ctx); err != nil {
		logger.Warn("vector: index initialization failed", "error", err)
		return client, nil
	}
	logger.Info("vector: index connection established")
	return client, nil
}

func (c *Client) Available() bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.available
}

func (c *Client) ensureReady(ctx context.Context) error {
	if c == nil {
		return errors.New("vector index client not configured")
	}
	if c.Available() {
		return nil
	}
	const maxAttempts = 3
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err = c.health(ctx)
		if err == nil {
			break
		}
		select {
		case <-ctx.Done():
			c.setAvailable(false)
			return ctx.Err()
		case <-time.After(time.Duration(attempt+1) * 250 * time.Millisecond):
		}
	}
	if err != nil {
		c.setAvailable(false)
		return err
	}
	c.setAvailable(true)
	return nil
}

func (c *Client) setAvailable(available bool) {
	c.mu.Lock()
	c.available = available
	c.mu.Unlock()
}

// EnsureNamespace resolves (creating when missing) the collection backing
// the namespace.
func (c *Client) EnsureNamespace(ctx context.Context, namespace string) error {
	if err := c.ensureReady(ctx); err != nil {
		return err
	}
	_, err := c.namespaceCollectionID(ctx, namespace)
	return err
}

func (c *Client) namespaceCollectionID(ctx context.Context, namespace string) (string, error) {
	trimmed := strings.TrimSpace(namespace)
	if trimmed == "" {
		return "", errors.New("namespace required")
	}
	c.mu.RLock()
	id := c.namespaceID[trimmed]
	c.mu.RUnlock()
	if id != "" {
		return id, nil
	}
	id, err := c.findCollection(ctx, trimmed)
	if err != nil {
		return "", err
	}
	if id == "" {
		id, err = c.createCollection(ctx, trimmed)
		if err != nil {
			return "", err
		}
	}
	c.mu.Lock()
	c.namespaceID[trimmed] = id
	c.mu.Unlock()
	return id, nil
}

// Upsert writes mentor records and their vectors into a namespace.
func (c *Client) Upsert(ctx context.Context, namespace string, records []Record, vectors [][]float32) error {
	if err := c.ensureReady(ctx); err != nil {
		return err
	}
	if !c.Available() {
		return errors.New("vector index unavailable")
	}
	if len(records) == 0 {
		return nil
	}
	collectionID, err := c.namespaceCollectionID(ctx, namespace)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(records))
	documents := make([]string, 0, len(records))
	metadatas := make([]map[string]interface{}, 0, len(records))
	embeddings := make([][]float32, 0, len(records))
	for idx, record := range records {
		ids = append(ids, record.ID)
		documents = append(documents, record.Document)
		metadatas = append(metadatas, record.Metadata)
		if idx < len(vectors) {
			embeddings = append(embeddings, vectors[idx])
		} else {
			embeddings = append(embeddings, nil)
		}
	}
	payload := map[string]interface{}{
		"ids":        ids,
		"documents":  documents,
		"metadatas":  metadatas,
		"embeddings": embeddings,
	}
	endpoint := fmt.Sprintf("%s/collections/%s/upsert", c.baseURL, url.PathEscape(collectionID))
	if err := c.doRequest(ctx, http.MethodPost, endpoint, payload, nil); err != nil {
		if errors.Is(err, errNotFound) {
			fallback := fmt.Sprintf("%s/collections/%s/add", c.baseURL, url.PathEscape(collectionID))
			return c.doRequest(ctx, http.MethodPost, fallback, payload, nil)
		}
		return err
	}
	return nil
}

// Query runs a nearest-neighbor search in a namespace. Distances are mapped
// to similarity via 1/(1+distance).
func (c *Client) Query(ctx context.Context, namespace string, vector []float32, topK int, filter map[string]interface{}) ([]Point, error) {
	if err := c.ensureReady(ctx); err != nil {
		return nil, err
	}
	if !c.Available() {
		return nil, errors.New("vector index unavailable")
	}
	if topK <= 0 {
		topK = 5
	}
	collectionID, err := c.namespaceCollectionID(ctx, namespace)
	if err != nil {
		return nil, err
	}
	body := map[string]interface{}{
		"query_embeddings": [][]float32{vector},
		"n_results":        topK,
	}
	if len(filter) > 0 {
		body["where"] = filter
	}
	endpoint := fmt.Sprintf("%s/collections/%s/query", c.baseURL, url.PathEscape(collectionID))
	var resp struct {
		IDs       [][]string                 `json:"ids"`
		Distances [][]float64                `json:"distances"`
		Metadatas [][]map[string]interface{} `json:"metadatas"`
		Documents [][]string                 `json:"documents"`
	}
	if err := c.doRequest(ctx, http.MethodPost, endpoint, body, &resp); err != nil {
		return nil, err
	}
	if len(resp.IDs) == 0 {
		return nil, nil
	}
	points := make([]Point, 0, len(resp.IDs[0]))
	for idx, id := range resp.IDs[0] {
		payload := map[string]interface{}{}
		if len(resp.Metadatas) > 0 && idx < len(resp.Metadatas[0]) {
			for k, v := range resp.Metadatas[0][idx] {
				payload[k] = v
			}
		}
		score := float32(0)
		if len(resp.Distances) > 0 && idx < len(resp.Distances[0]) {
			dist := resp.Distances[0][idx]
			score = float32(1.0 / (1.0 + dist))
		}
		points = append(points, Point{ID: id, Score: score, Payload: payload})
	}
	return points, nil
}

var _ Index = (*Client)(nil)

func (c *Client) findCollection(ctx context.Context, name string) (string, error) {
	endpoint := fmt.Sprintf("%s/collections?name=%s", c.baseURL, url.QueryEscape(name))
	var resp struct {
		Collections []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"collections"`
	}
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		if errors.Is(err, errNotFound) {
			return "", nil
		}
		// Fallback to enumerating collections when the name filter is
		// unsupported.
		endpoint = fmt.Sprintf("%s/collections", c.baseURL)
		if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
			return "", err
		}
	}
	for _, col := range resp.Collections {
		if strings.EqualFold(col.Name, name) {
			return col.ID, nil
		}
	}
	return "", nil
}

func (c *Client) createCollection(ctx context.Context, name string) (string, error) {
	payload := map[string]interface{}{"name": name}
	endpoint := fmt.Sprintf("%s/collections", c.baseURL)
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.doRequest(ctx, http.MethodPost, endpoint, payload, &resp); err != nil {
		if errors.Is(err, errConflict) {
			return c.findCollection(ctx, name)
		}
		return "", err
	}
	return resp.ID, nil
}

var (
	errNotFound = errors.New("resource not found")
	errConflict = errors.New("resource conflict")
)

func (c *Client) health(ctx context.Context) error {
	endpoint := fmt.Sprintf("%s/heartbeat", c.baseURL)
	return c.doRequest(ctx, http.MethodGet, endpoint, nil, nil)
}

func (c *Client) doRequest(ctx context.Context, method, endpoint string, body interface{}, out interface{}) error {
	if c == nil {
		return errors.New("vector index client not configured")
	}
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}
	if resp.StatusCode == http.StatusConflict {
		return errConflict
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("vector index %s %s failed: %s", method, endpoint, strings.TrimSpace(string(data)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Close releases pooled resources associated with the client.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	if c.transport != nil {
		c.transport.CloseIdleConnections()
	}
	return nil
}

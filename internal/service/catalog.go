package service

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

	"bookcatalog/internal/models"
)

var (
	ErrListFailed   = errors.New("list books failed")
	ErrCreateFailed = errors.New("create book failed")
	ErrDeleteFailed = errors.New("delete book failed")
)

// CatalogClient talks to the books resource at baseURL.
// Every call is attempted exactly once.
type CatalogClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewCatalogClient(client *http.Client, baseURL string) *CatalogClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &CatalogClient{
		httpClient: client,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// List returns the books in the order the store sent them.
func (c *CatalogClient) List(ctx context.Context) ([]models.Book, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: network: %v", ErrListFailed, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, fmt.Errorf("%w: server returned %s", ErrListFailed, resp.Status)
	}

	var books []models.Book
	if err := json.NewDecoder(resp.Body).Decode(&books); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrListFailed, err)
	}
	if books == nil {
		books = []models.Book{}
	}
	return books, nil
}

// Create posts the draft. The created book is not returned; callers re-list to see it.
func (c *CatalogClient) Create(ctx context.Context, draft models.Draft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrCreateFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreateFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: network: %v", ErrCreateFailed, err)
	}
	defer drain(resp.Body)

	if !isSuccess(resp.StatusCode) {
		return fmt.Errorf("%w: server returned %s", ErrCreateFailed, resp.Status)
	}
	return nil
}

// Delete removes the book addressed by id.
func (c *CatalogClient) Delete(ctx context.Context, id string) error {
	target := c.baseURL + "/" + url.PathEscape(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, target, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: network: %v", ErrDeleteFailed, err)
	}
	defer drain(resp.Body)

	if !isSuccess(resp.StatusCode) {
		return fmt.Errorf("%w: server returned %s", ErrDeleteFailed, resp.Status)
	}
	return nil
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

// drain lets the transport reuse the connection.
func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	body.Close()
}

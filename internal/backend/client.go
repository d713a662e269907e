package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "smartparking/internal/errors"
)

// Client is a thin wrapper over the backend REST API. Every non-2xx
// response becomes an *errors.RequestError; there are no retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FilePart is a file field of a multipart request.
type FilePart struct {
	Field    string
	Filename string
	Content  io.Reader
}

func (c *Client) Get(ctx context.Context, endpoint, token string, out interface{}) error {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	return c.do(req, token, out)
}

func (c *Client) PostJSON(ctx context.Context, endpoint, token string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return apperrors.NewTransportError(fmt.Errorf("encode request body: %w", err))
	}
	req, err := c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, token, out)
}

func (c *Client) PostForm(ctx context.Context, endpoint string, form url.Values, out interface{}) error {
	req, err := c.newRequest(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, "", out)
}

func (c *Client) PostMultipart(ctx context.Context, endpoint string, fields map[string]string, file *FilePart, out interface{}) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if file != nil {
		fw, err := w.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			return apperrors.NewTransportError(fmt.Errorf("create form file: %w", err))
		}
		if _, err := io.Copy(fw, file.Content); err != nil {
			return apperrors.NewTransportError(fmt.Errorf("copy form file: %w", err))
		}
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return apperrors.NewTransportError(fmt.Errorf("write field %s: %w", k, err))
		}
	}
	if err := w.Close(); err != nil {
		return apperrors.NewTransportError(fmt.Errorf("close multipart body: %w", err))
	}

	req, err := c.newRequest(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req, "", out)
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, apperrors.NewTransportError(fmt.Errorf("build request %s %s: %w", method, endpoint, err))
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request, token string, out interface{}) error {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return apperrors.NewStatusError(resp.StatusCode, resp.Status)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewTransportError(fmt.Errorf("decode %s response: %w", req.URL.Path, err))
	}
	return nil
}

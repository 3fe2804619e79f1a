package adapter

import (
	"PraxisAdminClient/internal/config"
	"PraxisAdminClient/internal/helper"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// RestAdapter executes requests against the Praxis API. Every request carries
// the configured bearer credential; responses are decoded as JSON and failure
// statuses are mapped onto the AppError taxonomy. No request is retried.
type RestAdapter struct {
	httpClient *http.Client
	cfg        *config.AppConfig
}

func NewRestAdapter(cfg *config.AppConfig, httpClient *http.Client) *RestAdapter {
	return &RestAdapter{
		httpClient: httpClient,
		cfg:        cfg,
	}
}

type MultipartPayload struct {
	Fields    map[string]string
	FieldName string
	FileName  string
	File      io.Reader
}

type errorBody struct {
	Error  string            `json:"error"`
	Errors map[string]string `json:"errors,omitempty"`
}

func (a *RestAdapter) Get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := a.newRequest(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return err
	}
	return a.do(req, out)
}

func (a *RestAdapter) GetBinary(ctx context.Context, path string, query url.Values) ([]byte, error) {
	req, err := a.newRequest(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return nil, err
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, helper.NewTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, readError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, helper.NewTransportError(err)
	}
	return data, nil
}

func (a *RestAdapter) Post(ctx context.Context, path string, query url.Values, body any, out any) error {
	return a.sendJSON(ctx, http.MethodPost, path, query, body, out)
}

func (a *RestAdapter) Put(ctx context.Context, path string, body any, out any) error {
	return a.sendJSON(ctx, http.MethodPut, path, nil, body, out)
}

func (a *RestAdapter) Delete(ctx context.Context, path string) error {
	req, err := a.newRequest(ctx, http.MethodDelete, path, nil, nil, "")
	if err != nil {
		return err
	}
	return a.do(req, nil)
}

func (a *RestAdapter) PostMultipart(ctx context.Context, path string, query url.Values, payload MultipartPayload, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range payload.Fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("failed to write multipart field: %w", err)
		}
	}

	if payload.File != nil {
		part, err := writer.CreateFormFile(payload.FieldName, payload.FileName)
		if err != nil {
			return fmt.Errorf("failed to create multipart file part: %w", err)
		}
		if _, err := io.Copy(part, payload.File); err != nil {
			return fmt.Errorf("failed to copy multipart file: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := a.newRequest(ctx, http.MethodPost, path, query, &buf, writer.FormDataContentType())
	if err != nil {
		return err
	}
	return a.do(req, out)
}

func (a *RestAdapter) sendJSON(ctx context.Context, method string, path string, query url.Values, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := a.newRequest(ctx, method, path, query, reader, "application/json")
	if err != nil {
		return err
	}
	return a.do(req, out)
}

func (a *RestAdapter) newRequest(ctx context.Context, method string, path string, query url.Values, body io.Reader, contentType string) (*http.Request, error) {
	fullURL := a.cfg.APIBaseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+a.cfg.APIToken)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

func (a *RestAdapter) do(req *http.Request, out any) error {
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return helper.NewTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return readError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return helper.NewTransportError(fmt.Errorf("failed to decode response body: %w", err))
	}
	return nil
}

func readError(resp *http.Response) error {
	var parsed errorBody
	data, err := io.ReadAll(resp.Body)
	if err == nil {
		_ = json.Unmarshal(data, &parsed)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return helper.NewNotFoundError(parsed.Error)
	case resp.StatusCode == http.StatusUnauthorized:
		return helper.NewUnauthorizedError(parsed.Error)
	case len(parsed.Errors) > 0:
		return helper.NewValidationError(parsed.Error, parsed.Errors)
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return helper.NewBadRequestError(parsed.Error)
	default:
		return helper.NewAppError(resp.StatusCode, http.StatusText(resp.StatusCode))
	}
}

package publishing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/rios0rios0/modrelease/internal/domain/entities"
	domainRepos "github.com/rios0rios0/modrelease/internal/domain/repositories"
)

// NewDefaultHTTPClient returns a pooled client with no shared global state,
// bounded by timeout.
func NewDefaultHTTPClient(timeout time.Duration) *http.Client {
	client := cleanhttp.DefaultPooledClient()
	client.Timeout = timeout
	return client
}

// ClientOrDefault returns client, or a default client when it is nil.
func ClientOrDefault(client domainRepos.HTTPClient, timeout time.Duration) domainRepos.HTTPClient {
	if client != nil {
		return client
	}
	return NewDefaultHTTPClient(timeout)
}

// CloseIdle releases idle connections when the client supports it.
func CloseIdle(client domainRepos.HTTPClient) {
	if closer, ok := client.(interface{ CloseIdleConnections() }); ok {
		closer.CloseIdleConnections()
	}
}

// Response is a fully read HTTP response.
type Response struct {
	Status  int
	Body    []byte
	Cookies []*http.Cookie
}

// Do sends the request and reads the whole body. Transport failures and
// non-2xx statuses become *entities.PublishError carrying the raw body.
func Do(client domainRepos.HTTPClient, req *http.Request, provider string, timeout time.Duration) (*Response, error) {
	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s: %w", timeout, err)
		}
		return nil, &entities.PublishError{Provider: provider, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &entities.PublishError{
			Provider: provider,
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("failed to read response: %w", err),
		}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &entities.PublishError{
			Provider: provider,
			Status:   resp.StatusCode,
			Body:     string(body),
			Err:      fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	return &Response{Status: resp.StatusCode, Body: body, Cookies: resp.Cookies()}, nil
}

// MultipartForm builds a multipart/form-data body with plain fields and one file.
type MultipartForm struct {
	buffer *bytes.Buffer
	writer *multipart.Writer
}

// NewMultipartForm creates an empty form.
func NewMultipartForm() *MultipartForm {
	buffer := &bytes.Buffer{}
	return &MultipartForm{buffer: buffer, writer: multipart.NewWriter(buffer)}
}

// AddField appends a plain field.
func (f *MultipartForm) AddField(name, value string) error {
	return f.writer.WriteField(name, value)
}

// AddFile appends the content of path under the given field name.
func (f *MultipartForm) AddFile(field, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open archive %q: %w", path, err)
	}
	defer file.Close()

	part, err := f.writer.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return err
	}
	_, err = io.Copy(part, file)
	return err
}

// Close finalizes the form and returns the body and its content type.
func (f *MultipartForm) Close() (*bytes.Buffer, string, error) {
	if err := f.writer.Close(); err != nil {
		return nil, "", err
	}
	return f.buffer, f.writer.FormDataContentType(), nil
}

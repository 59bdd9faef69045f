package invoice

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// Renderer turns an HTML page into a PDF.
type Renderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// GotenbergRenderer uses the Chromium HTML route of a Gotenberg service.
type GotenbergRenderer struct {
	client  *http.Client
	baseURL string
}

func NewGotenbergRenderer(client *http.Client, baseURL string) *GotenbergRenderer {
	return &GotenbergRenderer{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

func (r *GotenbergRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(part, html); err != nil {
		return nil, err
	}
	if err := mw.WriteField("printBackground", "true"); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/forms/chromium/convert/html", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pdf renderer request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("pdf renderer returned status %d: %s", resp.StatusCode, string(snippet))
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	return pdf, nil
}

var _ Renderer = (*GotenbergRenderer)(nil)

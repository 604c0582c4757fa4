package card

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/naka-gawa/github-card/internal/domain"
)

// Attachment is a file carried by a share payload.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// SharePayload mirrors a platform share sheet: a title, a message and attached files.
type SharePayload struct {
	Title string
	Text  string
	Files []Attachment
}

// Sharer publishes a payload. Implementations return domain.ErrShareUnsupported when they
// have no share capability.
type Sharer interface {
	Share(ctx context.Context, payload SharePayload) error
}

// HTTPSharer posts payloads as multipart/form-data to URL.
type HTTPSharer struct {
	URL    string
	Client *http.Client
}

func (s *HTTPSharer) Share(ctx context.Context, payload SharePayload) error {
	if s == nil || s.URL == "" {
		return domain.ErrShareUnsupported
	}
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("title", payload.Title); err != nil {
		return err
	}
	if err := mw.WriteField("text", payload.Text); err != nil {
		return err
	}
	for _, f := range payload.Files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, f.Name))
		header.Set("Content-Type", f.ContentType)
		part, err := mw.CreatePart(header)
		if err != nil {
			return err
		}
		if _, err := part.Write(f.Data); err != nil {
			return err
		}
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, &body)
	if err != nil {
		return fmt.Errorf("failed to build share request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: share endpoint returned %d", domain.ErrUpstream, resp.StatusCode)
	}
	return nil
}

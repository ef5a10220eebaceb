package plantuml

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/docforge/docforge/internal/domain"
)

// maxImageSize caps the response body accepted from a server.
const maxImageSize = 32 << 20

// ServerRenderer implements domain.DiagramRenderer against a PlantUML server.
type ServerRenderer struct {
	baseURL string
	client  *http.Client
}

// NewServerRenderer renders through the server at baseURL, e.g.
// https://www.plantuml.com/plantuml.
func NewServerRenderer(baseURL string, timeout time.Duration) *ServerRenderer {
	return &ServerRenderer{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (r *ServerRenderer) Render(ctx context.Context, source string, format domain.ImageFormat) ([]byte, error) {
	encoded, err := Encode(source)
	if err != nil {
		return nil, &domain.RenderingError{Format: string(format), Err: err}
	}

	url := fmt.Sprintf("%s/%s/%s", r.baseURL, format, encoded)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.RenderingError{Format: string(format), Err: err}
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &domain.RenderingError{Format: string(format), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
	if err != nil {
		return nil, &domain.RenderingError{Format: string(format), Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &domain.RenderingError{
			Format: string(format),
			Err:    fmt.Errorf("server returned %s", resp.Status),
		}
	}
	return body, nil
}

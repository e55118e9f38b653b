package generation

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
)

type AssetKind string

const (
	AssetVideo  AssetKind = "video"
	AssetAudio  AssetKind = "audio"
	AssetScript AssetKind = "script"
)

// Asset is either a remote file (SourceURL) or inline bytes (Data).
type Asset struct {
	Kind        AssetKind
	Name        string
	SourceURL   string
	Data        []byte
	ContentType string
}

// StoragePath is where hosts place the asset inside their bucket.
func (a Asset) StoragePath() string {
	return path.Join("neuroforge", string(a.Kind)+"s", a.Name)
}

// Resolve returns the asset bytes, downloading SourceURL when no inline data is set.
func (a Asset) Resolve(ctx context.Context, httpClient *http.Client) ([]byte, string, error) {
	if a.Data != nil {
		return a.Data, a.contentType(""), nil
	}
	if a.SourceURL == "" {
		return nil, "", fmt.Errorf("asset %s has neither data nor source url", a.Name)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.SourceURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download %s: %w", a.SourceURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to download %s: status %d", a.SourceURL, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", a.SourceURL, err)
	}
	return data, a.contentType(resp.Header.Get("Content-Type")), nil
}

func (a Asset) contentType(fromResponse string) string {
	if a.ContentType != "" {
		return a.ContentType
	}
	if fromResponse != "" {
		return strings.TrimSpace(strings.Split(fromResponse, ";")[0])
	}
	switch a.Kind {
	case AssetVideo:
		return "video/mp4"
	case AssetAudio:
		return "audio/mpeg"
	default:
		return "text/plain"
	}
}

package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-telegram/bot"

	"github.com/set-night/lovematch/internal/config"
	"github.com/set-night/lovematch/internal/domain"
)

// DownloadFile downloads a file from Telegram by file ID.
// Files above config.MaxDownloadBytes are rejected with domain.ErrImageTooLarge.
func (c *Client) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := c.bot.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}
	if file.FileSize > config.MaxDownloadBytes {
		return nil, fmt.Errorf("file %s is %d bytes: %w", fileID, file.FileSize, domain.ErrImageTooLarge)
	}

	fileURL := c.bot.FileDownloadLink(file)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, config.MaxDownloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read file data: %w", err)
	}
	if len(data) > config.MaxDownloadBytes {
		return nil, fmt.Errorf("file %s: %w", fileID, domain.ErrImageTooLarge)
	}

	return data, nil
}

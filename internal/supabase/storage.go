package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"trademind/internal/domain"

	"go.uber.org/zap"
)

// Upload stores data in the screenshot bucket under name.
func (c *Client) Upload(ctx context.Context, name string, data []byte, contentType string) error {
	_, span := c.tracer.Start(ctx, "supabase.upload-screenshot")
	defer span.End()

	path := fmt.Sprintf("%s/object/%s/%s", storagePath, url.PathEscape(c.bucket), url.PathEscape(name))
	req := c.rest.R().
		SetHeader("Content-Type", contentType).
		SetHeader("x-upsert", "false").
		SetBody(data)
	if _, err := c.do(ctx, "upload screenshot", http.MethodPost, path, req); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	c.logger.Info("uploaded screenshot", zap.String("bucket", c.bucket), zap.String("name", name), zap.Int("bytes", len(data)))
	return nil
}

// PublicURL is the unauthenticated URL of name in the screenshot bucket.
func (c *Client) PublicURL(name string) string {
	return fmt.Sprintf("%s%s/object/public/%s/%s", c.baseURL, storagePath, url.PathEscape(c.bucket), url.PathEscape(name))
}

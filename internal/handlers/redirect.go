package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Ghulam-Abbas-65/QR/internal/qr"
	"github.com/Ghulam-Abbas-65/QR/internal/redirect"
	"github.com/Ghulam-Abbas-65/QR/internal/store"
	"github.com/Ghulam-Abbas-65/QR/internal/tracker"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RedirectHandler serves the redirect and file-delivery endpoints.
type RedirectHandler struct {
	service *redirect.Service
	files   qr.FileRepository
	blobs   *store.FileStore
	baseURL string
	logger  *zap.Logger
}

// NewRedirectHandler creates the redirect/download handler.
func NewRedirectHandler(
	service *redirect.Service,
	files qr.FileRepository,
	blobs *store.FileStore,
	baseURL string,
	logger *zap.Logger,
) *RedirectHandler {
	return &RedirectHandler{
		service: service,
		files:   files,
		blobs:   blobs,
		baseURL: baseURL,
		logger:  logger,
	}
}

// Redirect resolves a short code and issues the redirect. Inactive and
// unknown codes are indistinguishable to the client: both are 404.
func (h *RedirectHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	meta := tracker.RequestMetaFromContext(ctx)

	dest, err := h.service.HandleRedirect(ctx, qr.ShortCode(req.Code), meta)
	if err != nil {
		if errors.Is(err, qr.ErrNotFound) || errors.Is(err, qr.ErrInactive) {
			return nil, huma.Error404NotFound("qr code not found")
		}

		return nil, huma.Error500InternalServerError("failed to resolve destination")
	}

	resp := &RedirectResponse{Status: http.StatusFound}

	switch dest.Kind {
	case redirect.KindFile:
		resp.Headers.Location = fmt.Sprintf("%s/%s", h.baseURL, dest.FileToken)
	case redirect.KindURL:
		resp.Headers.Location = dest.URL
	}

	return resp, nil
}

// Download streams an uploaded file by its access token with the original
// filename as an attachment.
func (h *RedirectHandler) Download(ctx context.Context, req *DownloadRequest) (*huma.StreamResponse, error) {
	token, err := uuid.Parse(req.Token)
	if err != nil {
		return nil, huma.Error404NotFound("file not found")
	}

	file, err := h.files.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, qr.ErrNotFound) {
			return nil, huma.Error404NotFound("file not found")
		}

		return nil, huma.Error500InternalServerError("failed to load file")
	}

	blob, err := h.blobs.Open(file.Path)
	if err != nil {
		h.logger.Error("failed to open stored blob",
			zap.String("token", token.String()), zap.Error(err))

		return nil, huma.Error404NotFound("file not found")
	}

	return &huma.StreamResponse{
		Body: func(ctx huma.Context) {
			defer blob.Close()

			ctx.SetHeader("Content-Type", "application/octet-stream")
			ctx.SetHeader("Content-Disposition",
				fmt.Sprintf("attachment; filename=%q", file.OriginalFilename))

			if _, err := io.Copy(ctx.BodyWriter(), blob); err != nil {
				h.logger.Warn("file stream interrupted",
					zap.String("token", token.String()), zap.Error(err))
			}
		},
	}, nil
}

package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ghulam-Abbas-65/QR/internal/analytics"
	"github.com/Ghulam-Abbas-65/QR/internal/qr"
	"github.com/Ghulam-Abbas-65/QR/internal/render"
	"github.com/Ghulam-Abbas-65/QR/internal/store"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CodeGenerator generates unique short codes.
type CodeGenerator func() string

// StatsReader surfaces the aggregated scan counters for the detail view.
type StatsReader interface {
	Read(ctx context.Context, shortCode string) (*analytics.Stats, error)
}

// QRHandler handles QR code management operations.
type QRHandler struct {
	codes        qr.Repository
	files        qr.FileRepository
	scans        qr.ScanStore
	blobs        *store.FileStore
	stats        StatsReader
	generateCode CodeGenerator
	baseURL      string
	logger       *zap.Logger
}

// NewQRHandler creates a QR management handler. stats may be nil if no
// rollup backend is configured.
func NewQRHandler(
	codes qr.Repository,
	files qr.FileRepository,
	scans qr.ScanStore,
	blobs *store.FileStore,
	stats StatsReader,
	generator CodeGenerator,
	baseURL string,
	logger *zap.Logger,
) *QRHandler {
	return &QRHandler{
		codes:        codes,
		files:        files,
		scans:        scans,
		blobs:        blobs,
		stats:        stats,
		generateCode: generator,
		baseURL:      baseURL,
		logger:       logger,
	}
}

func (h *QRHandler) CreateURLQR(ctx context.Context, req *CreateURLQRRequest) (*QRCodeResponse, error) {
	rec := &qr.CodeRecord{
		OwnerID:       req.Body.OwnerID,
		Type:          qr.TypeStaticURL,
		Content:       req.Body.URL,
		ShortCode:     qr.ShortCode(h.generateCode()),
		Name:          req.Body.Name,
		Active:        true,
		UTM:           toUTM(req.Body.UTM),
		Customization: toCustomization(req.Body.Customization),
		Advanced:      toAdvanced(req.Body.Advanced),
	}

	if err := h.codes.SaveCode(ctx, rec); err != nil {
		h.logger.Error("failed to save url code", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to save qr code")
	}

	return h.codeResponse(rec), nil
}

func (h *QRHandler) CreateDynamicQR(ctx context.Context, req *CreateDynamicQRRequest) (*QRCodeResponse, error) {
	if req.Body.DefaultURL == "" && req.Body.MobileURL == "" && req.Body.DesktopURL == "" {
		return nil, huma.Error422UnprocessableEntity(
			"at least one of defaultUrl, mobileUrl, or desktopUrl must be provided")
	}

	rec := &qr.CodeRecord{
		OwnerID:   req.Body.OwnerID,
		Type:      qr.TypeDynamic,
		Content:   req.Body.DefaultURL,
		ShortCode: qr.ShortCode(h.generateCode()),
		Name:      req.Body.Name,
		Active:    true,
		DeviceRedirects: &qr.DeviceRedirects{
			DefaultURL: req.Body.DefaultURL,
			MobileURL:  req.Body.MobileURL,
			DesktopURL: req.Body.DesktopURL,
		},
		UTM:           toUTM(req.Body.UTM),
		Customization: toCustomization(req.Body.Customization),
		Advanced:      toAdvanced(req.Body.Advanced),
	}

	if err := h.codes.SaveCode(ctx, rec); err != nil {
		h.logger.Error("failed to save dynamic code", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to save qr code")
	}

	return h.codeResponse(rec), nil
}

func (h *QRHandler) CreateFileQR(ctx context.Context, req *CreateFileQRRequest) (*QRCodeResponse, error) {
	upload := req.RawBody.Data()
	if !upload.File.IsSet {
		return nil, huma.Error422UnprocessableEntity("file is required")
	}

	token := uuid.New()

	path, err := h.blobs.Save(token, upload.File)
	if err != nil {
		h.logger.Error("failed to store uploaded file", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to store file")
	}

	file := &qr.UploadedFile{
		OwnerID:          req.OwnerID,
		Token:            token,
		Path:             path,
		OriginalFilename: upload.File.Filename,
	}

	if err := h.files.SaveFile(ctx, file); err != nil {
		h.logger.Error("failed to save file record", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to save file")
	}

	rec := &qr.CodeRecord{
		OwnerID:   req.OwnerID,
		Type:      qr.TypeStaticFile,
		ShortCode: qr.ShortCode(h.generateCode()),
		Name:      req.Name,
		Active:    true,
		FileID:    &file.ID,
		FileToken: &token,
	}

	if err := h.codes.SaveCode(ctx, rec); err != nil {
		h.logger.Error("failed to save file code", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to save qr code")
	}

	return h.codeResponse(rec), nil
}

func (h *QRHandler) GetQR(ctx context.Context, req *GetQRRequest) (*QRDetailResponse, error) {
	rec, err := h.codes.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, qr.ErrNotFound) {
			return nil, huma.Error404NotFound("qr code not found")
		}

		return nil, huma.Error500InternalServerError("failed to load qr code")
	}

	resp := &QRDetailResponse{}
	resp.Body.QRCodeBody = h.codeBody(rec)

	if count, err := h.scans.CountScans(ctx, rec.ID); err == nil {
		resp.Body.ScanCount = count
	}

	scans, err := h.scans.RecentScans(ctx, rec.ID, 10)
	if err != nil {
		h.logger.Warn("failed to load recent scans",
			zap.Int64("codeId", rec.ID), zap.Error(err))
	}

	if h.stats != nil {
		st, err := h.stats.Read(ctx, string(rec.ShortCode))
		if err != nil {
			h.logger.Warn("failed to read scan stats",
				zap.String("shortCode", string(rec.ShortCode)), zap.Error(err))
		} else {
			resp.Body.Stats = &StatsView{
				TotalScans:     st.TotalScans,
				UniqueVisitors: st.UniqueVisitors,
				Countries:      st.Countries,
				Cities:         st.Cities,
				Devices:        st.Devices,
				Browsers:       st.Browsers,
				Referrers:      st.Referrers,
			}
		}
	}

	for _, s := range scans {
		resp.Body.RecentScans = append(resp.Body.RecentScans, ScanView{
			Country:         s.Country,
			City:            s.City,
			DeviceType:      s.DeviceType,
			Browser:         s.Browser,
			OperatingSystem: s.OperatingSystem,
			Referrer:        s.Referrer,
			ScannedAt:       s.ScannedAt,
		})
	}

	return resp, nil
}

func (h *QRHandler) ListQR(ctx context.Context, req *ListQRRequest) (*QRListResponse, error) {
	records, err := h.codes.ListByOwner(ctx, req.OwnerID)
	if err != nil {
		h.logger.Error("failed to list qr codes",
			zap.Int64("ownerId", req.OwnerID), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to list qr codes")
	}

	resp := &QRListResponse{}
	resp.Body.Codes = make([]QRCodeBody, 0, len(records))

	for _, rec := range records {
		resp.Body.Codes = append(resp.Body.Codes, h.codeBody(rec))
	}

	return resp, nil
}

func (h *QRHandler) DeactivateQR(ctx context.Context, req *DeactivateQRRequest) (*struct{}, error) {
	if err := h.codes.Deactivate(ctx, req.ID); err != nil {
		if errors.Is(err, qr.ErrNotFound) {
			return nil, huma.Error404NotFound("qr code not found")
		}

		h.logger.Error("failed to deactivate qr code",
			zap.Int64("codeId", req.ID), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to deactivate qr code")
	}

	return nil, nil
}

func (h *QRHandler) UpdateDynamicQR(ctx context.Context, req *UpdateDynamicQRRequest) (*QRCodeResponse, error) {
	rec, err := h.codes.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, qr.ErrNotFound) {
			return nil, huma.Error404NotFound("qr code not found")
		}

		return nil, huma.Error500InternalServerError("failed to load qr code")
	}

	if rec.Type != qr.TypeDynamic {
		return nil, huma.Error422UnprocessableEntity("only dynamic codes can be updated")
	}

	if req.Body.Content != nil {
		rec.Content = *req.Body.Content
	}

	if req.Body.Name != nil {
		rec.Name = *req.Body.Name
	}

	if req.Body.Active != nil {
		rec.Active = *req.Body.Active
	}

	if req.Body.Redirects != nil {
		rec.DeviceRedirects = &qr.DeviceRedirects{
			DefaultURL: req.Body.Redirects.DefaultURL,
			MobileURL:  req.Body.Redirects.MobileURL,
			DesktopURL: req.Body.Redirects.DesktopURL,
		}
	}

	if req.Body.UTM != nil {
		rec.UTM = toUTM(req.Body.UTM)
	}

	if err := h.codes.UpdateDynamic(ctx, rec); err != nil {
		if errors.Is(err, qr.ErrNotFound) {
			return nil, huma.Error404NotFound("qr code not found")
		}

		h.logger.Error("failed to update dynamic code",
			zap.Int64("codeId", req.ID), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to update qr code")
	}

	return h.codeResponse(rec), nil
}

// RenderImage rasterizes the code's tracked redirect URL into a PNG.
func (h *QRHandler) RenderImage(ctx context.Context, req *ImageRequest) (*ImageResponse, error) {
	rec, err := h.codes.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, qr.ErrNotFound) {
			return nil, huma.Error404NotFound("qr code not found")
		}

		return nil, huma.Error500InternalServerError("failed to load qr code")
	}

	png, err := render.PNG(h.redirectURL(rec), rec.Customization)
	if err != nil {
		h.logger.Error("failed to render qr image",
			zap.Int64("codeId", rec.ID), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to render qr image")
	}

	return &ImageResponse{ContentType: "image/png", Body: png}, nil
}

func (h *QRHandler) codeResponse(rec *qr.CodeRecord) *QRCodeResponse {
	return &QRCodeResponse{Body: h.codeBody(rec)}
}

func (h *QRHandler) codeBody(rec *qr.CodeRecord) QRCodeBody {
	body := QRCodeBody{
		ID:          rec.ID,
		Type:        string(rec.Type),
		Content:     rec.Content,
		ShortCode:   string(rec.ShortCode),
		Name:        rec.Name,
		Active:      rec.Active,
		RedirectURL: h.redirectURL(rec),
		ImageURL:    fmt.Sprintf("%s/api/qr/%d/image", h.baseURL, rec.ID),
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}

	if rec.FileToken != nil {
		body.FileToken = rec.FileToken.String()
	}

	if rec.DeviceRedirects != nil {
		body.Redirects = &DeviceRedirectsInput{
			DefaultURL: rec.DeviceRedirects.DefaultURL,
			MobileURL:  rec.DeviceRedirects.MobileURL,
			DesktopURL: rec.DeviceRedirects.DesktopURL,
		}
	}

	if rec.UTM != nil {
		body.UTM = &UTMInput{
			Source:   rec.UTM.Source,
			Medium:   rec.UTM.Medium,
			Campaign: rec.UTM.Campaign,
			Term:     rec.UTM.Term,
			Content:  rec.UTM.Content,
		}
	}

	return body
}

func (h *QRHandler) redirectURL(rec *qr.CodeRecord) string {
	return fmt.Sprintf("%s/r/%s", h.baseURL, rec.ShortCode)
}

func toUTM(in *UTMInput) *qr.UTMParameters {
	if in == nil {
		return nil
	}

	return &qr.UTMParameters{
		Source:   in.Source,
		Medium:   in.Medium,
		Campaign: in.Campaign,
		Term:     in.Term,
		Content:  in.Content,
	}
}

func toCustomization(in *CustomizationInput) *qr.Customization {
	if in == nil {
		return nil
	}

	return &qr.Customization{FillColor: in.FillColor, Size: in.Size}
}

func toAdvanced(in *AdvancedInput) *qr.AdvancedOptions {
	if in == nil {
		return nil
	}

	return &qr.AdvancedOptions{
		PasswordProtection: in.PasswordProtection,
		ExpiresAt:          in.ExpiresAt,
		UseShortURL:        in.UseShortURL,
	}
}

package handler

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/menuglobal/menu-admin/internal/core/domain"
	"github.com/menuglobal/menu-admin/internal/core/ports"
	"github.com/menuglobal/menu-admin/internal/metrics"
)

// MaxUploadBytes caps a single image upload.
const MaxUploadBytes = 5 << 20

// UploadHandler forwards images to the image host.
type UploadHandler struct {
	images ports.ImageHost
}

func NewUploadHandler(images ports.ImageHost) *UploadHandler {
	return &UploadHandler{images: images}
}

// Upload stores one image and returns its public URL. A manager's images
// always land in its restaurant's folder; an owner picks the restaurant with
// restaurant_id, or uploads to the shared folder (e.g. a logo for a
// restaurant not yet created).
//
// @Summary      Upload image
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Security     CookieAuth
// @Param        file    formData  file    true   "Image (JPEG, PNG, GIF or WebP, max 5 MiB)"
// @Param        restaurant_id  formData  string  false  "Owning restaurant (owners only)"
// @Success      201            {object}  uploadResponse
// @Failure      400            {object}  errorResponse
// @Failure      401            {object}  errorResponse
// @Router       /api/uploads [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return domain.NewValidationError("file is required")
	}
	if fh.Size > MaxUploadBytes {
		return domain.NewValidationError(fmt.Sprintf("image must be at most %d MiB", MaxUploadBytes>>20))
	}

	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxUploadBytes+1))
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return domain.NewValidationError(fmt.Sprintf("image must be at most %d MiB", MaxUploadBytes>>20))
	}
	if len(data) == 0 {
		return domain.NewValidationError("file is empty")
	}

	url, err := h.images.Upload(c.Request().Context(), data, uploadFolder(claims, c.FormValue("restaurant_id")))
	if err != nil {
		metrics.ImageUploadsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.ImageUploadsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusCreated, uploadResponse{URL: url})
}

func uploadFolder(claims *domain.SessionClaims, requested string) string {
	restaurantID := strings.TrimSpace(requested)
	if claims.Role != domain.RoleOwner {
		restaurantID = claims.RestaurantID
	}
	if restaurantID == "" {
		return ""
	}
	return domain.ImageFolder(restaurantID)
}

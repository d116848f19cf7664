package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hopebridge/eventhub/internal/app/models"
	"github.com/hopebridge/eventhub/internal/app/models/dto"
	"github.com/hopebridge/eventhub/internal/app/services"
	"github.com/hopebridge/eventhub/internal/middleware"
	"github.com/hopebridge/eventhub/internal/pkg/apperrors"
	"github.com/hopebridge/eventhub/internal/pkg/renderer"
)

// CertificateController handles certificate related operations
type CertificateController struct {
	certificateService services.CertificateService
	renderer           renderer.DocumentRenderer
}

// NewCertificateController creates a new CertificateController
func NewCertificateController(certificateService services.CertificateService, renderer renderer.DocumentRenderer) *CertificateController {
	return &CertificateController{
		certificateService: certificateService,
		renderer:           renderer,
	}
}

// DownloadMyCertificate handles issuing and downloading the caller's
// participation certificate for an event they registered for
// @Summary Download participation certificate
// @Description Issues the participation certificate for an event the caller registered for and streams it as a download. Repeated requests return the same certificate.
// @Tags certificates
// @Produce plain
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {file} file "Certificate document"
// @Failure 403 {object} dto.ErrorResponse "Caller is not registered for the event"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/certificate [get]
func (c *CertificateController) DownloadMyCertificate(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	cert, err := c.certificateService.IssueForAttendee(ctx.Request.Context(), id, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.streamDocument(ctx, cert)
}

// IssueAdHocCertificate handles admin issuance outside the registration flow
// @Summary Issue ad hoc certificate
// @Description Issues a certificate for an arbitrary name, for guests and volunteers who never registered. Every call mints a new certificate number.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AdHocCertificateRequest true "Certificate details"
// @Success 201 {object} dto.APIResponse{data=dto.CertificateResponse} "Certificate issued"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /admin/certificates [post]
func (c *CertificateController) IssueAdHocCertificate(ctx *gin.Context) {
	var req dto.AdHocCertificateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	cert, err := c.certificateService.IssueAdHoc(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(toCertificateResponse(cert)))
}

// VerifyCertificate handles the public certificate lookup
// @Summary Verify certificate
// @Description Looks up a certificate by its public number so third parties can confirm authenticity.
// @Tags certificates
// @Produce json
// @Param certNo path string true "Certificate number"
// @Success 200 {object} dto.APIResponse{data=dto.CertificateResponse} "Certificate found"
// @Failure 404 {object} dto.ErrorResponse "Certificate not found"
// @Router /certificates/verify/{certNo} [get]
func (c *CertificateController) VerifyCertificate(ctx *gin.Context) {
	certNo := ctx.Param("certNo")
	cert, err := c.certificateService.FindByNumber(ctx.Request.Context(), certNo)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(toCertificateResponse(cert)))
}

func (c *CertificateController) streamDocument(ctx *gin.Context, cert *models.Certificate) {
	document, err := c.renderer.Render(cert)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filename := fmt.Sprintf("certificate-%s.%s", cert.CertificateNumber, c.renderer.FileExtension())
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, c.renderer.ContentType(), document)
}

func toCertificateResponse(cert *models.Certificate) dto.CertificateResponse {
	return dto.CertificateResponse{
		CertificateNumber: cert.CertificateNumber,
		UserName:          cert.UserName,
		EventTitle:        cert.EventTitle,
		IssuedAt:          cert.IssuedAt,
		EventID:           cert.EventID,
	}
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetTrainETicketPDF GET /api/trains/pnr/:pnr/e-ticket returns the caller's e-ticket inline.
func (h *Handler) GetTrainETicketPDF(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	pdfBytes, filename, err := h.docs(c).TrainETicket(c.Request.Context(), c.Param("pnr"), user.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

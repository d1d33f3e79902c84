package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/tabsplit/internal/apperr"
	"github.com/mmynk/tabsplit/internal/service"
)

// respondError maps the error taxonomy to HTTP status codes. Server-side
// failures keep their detail in the logs, not the response.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrUpstream):
		slog.Error("Upstream failure", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream service failed"})
	default:
		slog.Error("Request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (s *Server) createBill(c *gin.Context) {
	var input service.CreateBillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := s.svc.CreateBill(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) getBill(c *gin.Context) {
	snapshot, err := s.svc.GetBill(c.Request.Context(), c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (s *Server) updateBill(c *gin.Context) {
	var input service.UpdateBillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	bill, err := s.svc.UpdateBill(c.Request.Context(), c.Param("ref"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bill)
}

func (s *Server) getSplits(c *gin.Context) {
	result, err := s.svc.ComputeSplits(c.Request.Context(), c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) joinBill(c *gin.Context) {
	var input struct {
		BillID string `json:"bill_id"`
		Name   string `json:"name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	participant, err := s.svc.JoinBill(c.Request.Context(), input.BillID, input.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, participant)
}

func (s *Server) claimItem(c *gin.Context) {
	var input struct {
		ParticipantID string   `json:"participant_id"`
		ItemID        string   `json:"item_id"`
		Share         *float64 `json:"share"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	// A claim without an explicit share takes one unit.
	share := 1.0
	if input.Share != nil {
		share = *input.Share
	}

	claim, err := s.svc.ClaimItem(c.Request.Context(), input.ParticipantID, input.ItemID, share)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, claim)
}

func (s *Server) unclaimItem(c *gin.Context) {
	participantID := c.Query("participant_id")
	itemID := c.Query("item_id")

	if err := s.svc.UnclaimItem(c.Request.Context(), participantID, itemID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// maxReceiptSize bounds uploaded receipt images (8 MiB).
const maxReceiptSize = 8 << 20

func (s *Server) scanReceipt(c *gin.Context) {
	if s.scanner == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "receipt scanning is not configured"})
		return
	}

	file, header, err := c.Request.FormFile("receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no receipt image provided"})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxReceiptSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read receipt image"})
		return
	}

	receipt, err := s.scanner.Scan(c.Request.Context(), image, header.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	billingdomain "github.com/kerbside/kerbside/internal/billing/domain"
	sessiondomain "github.com/kerbside/kerbside/internal/session/domain"
)

type enterRequest struct {
	VehicleID string `json:"vehicleId"`
}

// EnterParking creates a session when a vehicle enters. The body is optional;
// a missing or unreadable body just means no vehicle id was supplied.
func (s *Server) EnterParking(c *gin.Context) {
	var req enterRequest
	_ = c.ShouldBindJSON(&req)

	sess, err := s.sessionSvc.Enter(c.Request.Context(), req.VehicleID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"sessionId": sess.SessionID,
		"message":   "Parking session started",
		"entryTime": sess.EntryTime,
	})
}

// ExitParking completes the session and returns the bill breakdown.
func (s *Server) ExitParking(c *gin.Context) {
	id, ok := sessionIDParam(c)
	if !ok {
		return
	}

	var opts billingdomain.Options
	_ = c.ShouldBindJSON(&opts)

	sess, bill, err := s.sessionSvc.Exit(c.Request.Context(), id, opts)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"sessionId":       sess.SessionID,
		"vehicleId":       sess.VehicleID,
		"bill":            bill,
		"formattedAmount": billingdomain.FormatCurrency(bill.FinalAmount),
	})
}

func (s *Server) GetSession(c *gin.Context) {
	id, ok := sessionIDParam(c)
	if !ok {
		return
	}

	sess, err := s.sessionSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"session": sess,
	})
}

func (s *Server) ListSessions(c *gin.Context) {
	sessions, err := s.sessionSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if sessions == nil {
		sessions = []sessiondomain.Session{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"total":    len(sessions),
		"sessions": sessions,
	})
}

func (s *Server) ClearSessions(c *gin.Context) {
	if err := s.sessionSvc.Clear(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "All sessions cleared",
	})
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "parking-lot-billing-system",
	})
}

// sessionIDParam parses the :sessionId path segment. A non-integer id can
// never be in the registry, so it gets the same not-found envelope as a
// missing session.
func sessionIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("sessionId"), 10, 64)
	if err != nil {
		AbortWithError(c, sessiondomain.ErrNotFound)
		return 0, false
	}
	return id, true
}

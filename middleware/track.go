package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jansuvidha/noticeboard/utils"
)

// VisitRecorder records one site-wide visit.
type VisitRecorder interface {
	RecordVisit(ctx context.Context)
}

// ViewRecorder records one view of the listing identified by rawID.
type ViewRecorder interface {
	RecordView(ctx context.Context, rawID string)
}

const trackTimeout = 5 * time.Second

// TrackVisits counts successful GETs on public pages. The counter runs in a
// background goroutine after the response; the request never waits for it and
// never sees its failures.
func TrackVisits(rec VisitRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method != "GET" {
			return
		}
		status := c.Writer.Status()
		if status < 200 || status >= 400 {
			return
		}

		go func() {
			defer trackRecover("visit")
			ctx, cancel := context.WithTimeout(context.Background(), trackTimeout)
			defer cancel()
			rec.RecordVisit(ctx)
		}()
	}
}

// TrackListingViews counts successful GETs of a listing-detail page,
// identified by the :id path parameter. Same fire-and-forget dispatch as
// TrackVisits.
func TrackListingViews(rec ViewRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method != "GET" {
			return
		}
		status := c.Writer.Status()
		if status < 200 || status >= 400 {
			return
		}

		id := c.Param("id")
		go func() {
			defer trackRecover("view")
			ctx, cancel := context.WithTimeout(context.Background(), trackTimeout)
			defer cancel()
			rec.RecordView(ctx, id)
		}()
	}
}

// trackRecover is the error boundary of the background dispatch: a panicking
// counter must never take the process down.
func trackRecover(kind string) {
	if r := recover(); r != nil && utils.Sugar != nil {
		utils.Sugar.Errorf("%s tracking panic: %v", kind, r)
	}
}

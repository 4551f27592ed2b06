package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"parcelpro/internal/reports"
)

// Home handles GET /: the service banner.
func Home() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "This server is for ParcelPro. A Parcel Management System")
	}
}

// AdminStats handles GET /admin/stats (admin only).
func AdminStats(engine *reports.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/stats"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		stats, err := engine.PlatformStatsReport(ctx)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, stats)
	}
}

// HomeStats handles GET /home/stats: public landing-page counters.
func HomeStats(engine *reports.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /home/stats"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		stats, err := engine.HomeStatsReport(ctx)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, stats)
	}
}

// TopDeliveryMen handles GET /top-deliveryMen: the three busiest
// delivery men for the public landing page.
func TopDeliveryMen(engine *reports.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /top-deliveryMen"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		profiles, err := engine.TopDeliveryMen(ctx)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": profiles})
	}
}

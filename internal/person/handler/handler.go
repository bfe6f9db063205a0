package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rosterd/rosterd/internal/person"
	"github.com/rosterd/rosterd/internal/person/service"
	"github.com/rosterd/rosterd/pkg/logger"
	"github.com/rosterd/rosterd/pkg/metrics"
)

// Response messages are part of the public API contract.
const (
	msgNotFound      = "Person does not exist"
	msgDuplicate     = "Email already in use"
	msgCreated       = "Created successfully"
	msgUpdated       = "Updated successfully"
	msgDeleted       = "Deleted successfully"
	msgInternalError = "Internal Server error"
	msgBadBody       = "Invalid request body"
	msgMissingFields = "firstname, middlename, lastname and email are required"
)

var requiredFields = []string{"firstname", "middlename", "lastname", "email"}

// RegisterPersonRoutes registers the /api/persons CRUD endpoints.
func RegisterPersonRoutes(r *gin.Engine, svc *service.Service) {
	r.GET("/api/persons", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": svc.List(), "success": true})
		metrics.PersonOps.WithLabelValues("list", "ok").Inc()
	})

	r.GET("/api/persons/:id", func(c *gin.Context) {
		p, err := svc.Get(c.Param("id"))
		if err != nil {
			failWith(c, "get", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": p, "success": true})
		metrics.PersonOps.WithLabelValues("get", "ok").Inc()
	})

	r.POST("/api/persons", func(c *gin.Context) {
		var fields person.Fields
		if err := c.ShouldBindJSON(&fields); err != nil {
			fail(c, http.StatusBadRequest, msgBadBody)
			metrics.PersonOps.WithLabelValues("create", "rejected").Inc()
			return
		}
		for _, k := range requiredFields {
			if s, ok := fields[k].(string); !ok || s == "" {
				fail(c, http.StatusBadRequest, msgMissingFields)
				metrics.PersonOps.WithLabelValues("create", "rejected").Inc()
				return
			}
		}
		p, err := svc.Create(c.Request.Context(), fields)
		if err != nil {
			failWith(c, "create", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": p, "success": true, "message": msgCreated})
		metrics.PersonOps.WithLabelValues("create", "ok").Inc()
	})

	r.PUT("/api/persons/:id", func(c *gin.Context) {
		var fields person.Fields
		if err := c.ShouldBindJSON(&fields); err != nil {
			fail(c, http.StatusBadRequest, msgBadBody)
			metrics.PersonOps.WithLabelValues("update", "rejected").Inc()
			return
		}
		p, err := svc.Update(c.Request.Context(), c.Param("id"), fields)
		if err != nil {
			failWith(c, "update", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": p, "success": true, "message": msgUpdated})
		metrics.PersonOps.WithLabelValues("update", "ok").Inc()
	})

	r.DELETE("/api/persons/:id", func(c *gin.Context) {
		p, err := svc.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			failWith(c, "delete", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": p, "success": true, "message": msgDeleted})
		metrics.PersonOps.WithLabelValues("delete", "ok").Inc()
	})
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"data": nil, "success": false, "message": msg})
}

// failWith maps a service error onto the HTTP contract: NotFound -> 404,
// DuplicateEmail -> 400, anything else -> 500.
func failWith(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		fail(c, http.StatusNotFound, msgNotFound)
		metrics.PersonOps.WithLabelValues(op, "not_found").Inc()
	case errors.Is(err, service.ErrDuplicateEmail):
		fail(c, http.StatusBadRequest, msgDuplicate)
		metrics.PersonOps.WithLabelValues(op, "rejected").Inc()
	default:
		logger.Errorf("person %s failed: %v", op, err)
		fail(c, http.StatusInternalServerError, msgInternalError)
		metrics.PersonOps.WithLabelValues(op, "error").Inc()
	}
}

package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"taskhub/internal/constants"
	apierrors "taskhub/internal/errors"
	"taskhub/internal/models"
	"taskhub/internal/repository"
)

// RequireProjectAccess loads the project named by the :id parameter and
// verifies the caller is its owner or a member. The loaded project and the
// owner flag are stashed in the context for the handler.
func RequireProjectAccess(projects repository.ProjectRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		project, err := projects.FindByID(projectID, "Owner", "Members.User")
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierrors.NotFound(c, "Project not found")
			} else {
				apierrors.InternalError(c)
			}
			c.Abort()
			return
		}

		if !project.IsMemberOrOwner(userID) {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyProject, project)
		c.Set(constants.ContextKeyIsOwner, project.OwnerID == userID)
		c.Next()
	}
}

// RequireProjectOwner rejects callers that passed the access check but do
// not own the project.
func RequireProjectOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		isOwner, exists := c.Get(constants.ContextKeyIsOwner)
		if !exists {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}

		if owner, ok := isOwner.(bool); !ok || !owner {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetProject retrieves the project loaded by RequireProjectAccess.
func GetProject(c *gin.Context) (*models.Project, bool) {
	value, exists := c.Get(constants.ContextKeyProject)
	if !exists {
		return nil, false
	}
	project, ok := value.(*models.Project)
	return project, ok
}

package handler

import (
	"context"
	"net/http"

	"github.com/Payphone-Digital/auth-service/internal/dto"
	apperrors "github.com/Payphone-Digital/auth-service/internal/errors"
	"github.com/Payphone-Digital/auth-service/internal/middleware"
	ctxutil "github.com/Payphone-Digital/auth-service/pkg/context"
	"github.com/Payphone-Digital/auth-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

type EmployeeManager interface {
	Create(ctx context.Context, creatorID string, attrs map[string]any) (*dto.Resource, error)
	Get(ctx context.Context, id string) (*dto.Resource, error)
}

type EmployeeHandler struct {
	employees EmployeeManager
}

func NewEmployeeHandler(employees EmployeeManager) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	ctx := ctxutil.WithFunction(c.Request.Context(), "handler", "CreateEmployee")

	creator, ok := middleware.UserID(c)
	if !ok {
		writeError(c, apperrors.ErrNoToken)
		return
	}

	employee, err := h.employees.Create(ctx, creator, middleware.Attributes(c))
	if err != nil {
		logger.WarnWithContext(ctx, "Create employee failed").
			Err(err).
			Log()
		writeError(c, err)
		return
	}

	writeDocument(c, http.StatusCreated, dto.Document{Data: employee})
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	ctx := ctxutil.WithFunction(c.Request.Context(), "handler", "GetEmployee")

	employee, err := h.employees.Get(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	writeDocument(c, http.StatusOK, dto.Document{Data: employee})
}

package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// HandleServiceError maps service sentinel errors onto HTTP responses.
// Duplicate-registration and payment messages stay in Portuguese because
// the payment pages render them verbatim.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrAccountNotFound), errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusBadRequest, "Este email já está cadastrado")
	case errors.Is(err, ErrCreciAlreadyExists):
		RespondError(c, http.StatusBadRequest, "Este CRECI já está cadastrado no programa Founding 100")
	case errors.Is(err, ErrProgramSoldOut):
		RespondError(c, http.StatusBadRequest, "Programa Founding 100 esgotado. Todas as vagas foram preenchidas.")
	case errors.Is(err, ErrMissingFields):
		RespondError(c, http.StatusBadRequest, "Campos obrigatórios faltando")
	case errors.Is(err, ErrCompanyFieldsMissing):
		RespondError(c, http.StatusBadRequest, "Dados da empresa são obrigatórios")
	case errors.Is(err, ErrMemberNotFound):
		RespondError(c, http.StatusNotFound, "Founding member not found")
	case errors.Is(err, ErrListingNotFound):
		RespondError(c, http.StatusNotFound, "Listing not found")
	case errors.Is(err, ErrInvalidListingStatus):
		RespondError(c, http.StatusBadRequest, "Invalid listing status")
	case errors.Is(err, ErrPostNotFound):
		RespondError(c, http.StatusNotFound, "Post not found")
	case errors.Is(err, ErrPostForbidden):
		RespondError(c, http.StatusForbidden, "You do not own this post")
	case errors.Is(err, ErrPostPublished):
		RespondError(c, http.StatusBadRequest, "Cannot modify a published post")
	case errors.Is(err, ErrPostContentEmpty):
		RespondError(c, http.StatusBadRequest, "Post content cannot be empty")
	case errors.Is(err, ErrNoPlatforms):
		RespondError(c, http.StatusBadRequest, "At least one platform must be selected")
	case errors.Is(err, ErrInvalidPlatform):
		RespondError(c, http.StatusBadRequest, "Invalid platform")
	case errors.Is(err, ErrScheduleInPast):
		RespondError(c, http.StatusBadRequest, "Scheduled time must be in the future")
	case errors.Is(err, ErrBadScheduleTime):
		RespondError(c, http.StatusBadRequest, "scheduled_at must be a valid date")
	case errors.Is(err, ErrPostNotScheduled):
		RespondError(c, http.StatusBadRequest, "Post must be in scheduled status")
	case errors.Is(err, ErrFlowNotFound):
		RespondError(c, http.StatusNotFound, "Signup session not found or expired")
	case errors.Is(err, ErrFlowWrongStep):
		RespondError(c, http.StatusConflict, "Signup step out of order")
	case errors.Is(err, ErrPaymentGateway):
		Logger.WithError(err).Error("Payment gateway error")
		RespondError(c, http.StatusInternalServerError, "Erro ao criar pagamento")
	case errors.Is(err, ErrDatabaseError):
		Logger.WithError(err).Error("Database error")
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		Logger.WithError(err).Error("Unknown error")
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

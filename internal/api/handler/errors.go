package handler

import (
	"net/http"

	"likering/internal/api/response"
	"likering/internal/service"
	"likering/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const genericFailure = "Something went wrong, please try again later"

// responders answers each service error kind with its envelope helper.
var responders = map[service.Kind]func(*gin.Context, string){
	service.KindValidation:         response.BadRequest,
	service.KindNotFound:           response.NotFound,
	service.KindConflict:           response.Conflict,
	service.KindPermission:         response.Forbidden,
	service.KindInvalidCredentials: response.Unauthorized,
	service.KindUnavailable:        response.ServiceUnavailable,
}

// handleServiceError writes the failure envelope for err. Store failures are
// logged and replaced by a generic message.
func handleServiceError(c *gin.Context, err error, op string) {
	if kind, ok := service.KindOf(err); ok {
		if respond, known := responders[kind]; known {
			respond(c, err.Error())
			return
		}
	}
	logger.Error(op+" failed", zap.Error(err))
	response.InternalError(c, genericFailure)
}

// handleListError is handleServiceError for reads that return a list.
func handleListError(c *gin.Context, err error, op string) {
	response.FailList(c, listStatus(err, op), listMessage(err))
}

func listStatus(err error, op string) int {
	kind, ok := service.KindOf(err)
	if !ok {
		logger.Error(op+" failed", zap.Error(err))
		return http.StatusInternalServerError
	}
	switch kind {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func listMessage(err error) string {
	if kind, ok := service.KindOf(err); ok && (kind == service.KindValidation || kind == service.KindNotFound) {
		return err.Error()
	}
	return genericFailure
}

package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/linguist/errors"
	"github.com/kbukum/linguist/httpclient"
	"github.com/kbukum/linguist/logger"
)

// DataResponse is the standard success envelope.
type DataResponse struct {
	Data any `json:"data"`
}

// Failure categories shown to clients.
const (
	CategoryAuthentication     = "authentication"
	CategoryServiceUnavailable = "service_unavailable"
	CategoryNetwork            = "network"
	CategoryUnknown            = "unknown"
)

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, DataResponse{Data: data})
}

// respondError renders err. Provider failures carry a category so clients
// can tell a bad key from an outage.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	appErr := toAppError(err)
	if isProviderFailure(appErr.Code) {
		appErr = appErr.WithDetail("category", Categorize(err))
	}
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		log.WithContext(c.Request.Context()).Error("request failed", logger.Fields(
			"code", string(appErr.Code),
			logger.FieldError, err.Error(),
		))
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}

func toAppError(err error) *errors.AppError {
	if appErr, ok := errors.AsAppError(err); ok {
		// Copy so the detail added for the response never leaks back.
		cp := *appErr
		cp.Details = make(map[string]any, len(appErr.Details)+1)
		for k, v := range appErr.Details {
			cp.Details[k] = v
		}
		return &cp
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.New(errors.ErrCodeTransientProvider, "The provider did not answer in time.", http.StatusGatewayTimeout).WithCause(err)
	}
	var maxErr *http.MaxBytesError
	if stderrors.As(err, &maxErr) {
		return errors.New(errors.ErrCodeInvalidInput, "The upload is too large.", http.StatusRequestEntityTooLarge)
	}
	return errors.Internal(err)
}

func isProviderFailure(code errors.ErrorCode) bool {
	switch code {
	case errors.ErrCodeMissingCredential, errors.ErrCodeTransientProvider, errors.ErrCodePermanentProvider,
		errors.ErrCodeMalformedResponse, errors.ErrCodeEmptyResponse, errors.ErrCodeNoAudioData:
		return true
	}
	return false
}

// Categorize buckets a task failure for display.
func Categorize(err error) string {
	if err == nil {
		return CategoryUnknown
	}
	if errors.HasCode(err, errors.ErrCodeMissingCredential) || httpclient.IsAuth(err) {
		return CategoryAuthentication
	}
	if httpclient.IsTimeout(err) || httpclient.IsConnection(err) || stderrors.Is(err, context.DeadlineExceeded) {
		return CategoryNetwork
	}
	if errors.HasCode(err, errors.ErrCodeTransientProvider) || httpclient.IsServerError(err) {
		return CategoryServiceUnavailable
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "401") || strings.Contains(msg, "403") || strings.Contains(msg, "api key"):
		return CategoryAuthentication
	case strings.Contains(msg, "503") || strings.Contains(msg, "overloaded") || strings.Contains(msg, "unavailable"):
		return CategoryServiceUnavailable
	case strings.Contains(msg, "network") || strings.Contains(msg, "connection") || strings.Contains(msg, "timeout"):
		return CategoryNetwork
	}
	return CategoryUnknown
}

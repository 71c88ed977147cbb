package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	er "github.com/mcorbin/corbierror"
)

func errorHandler(logger *slog.Logger) func(err error, c echo.Context) {
	respond := func(c echo.Context, status int, messages ...string) {
		err := c.JSON(status, er.Error{Messages: messages})
		if err != nil {
			logger.Error(err.Error())
			c.Response().Status = http.StatusInternalServerError
		}
	}
	return func(err error, c echo.Context) {
		// ctx.Error() can be called with nil in a middleware
		if err == nil {
			return
		}
		errLoggedMsg := err.Error() + " on " + c.Request().Method + " " + c.Request().URL.Path
		if corbiError, ok := err.(*er.Error); ok {
			if corbiError.Type == er.Forbidden {
				logger.Warn(errLoggedMsg)
			} else {
				logger.Error(errLoggedMsg)
			}
			finalErr, status := er.HTTPError(*corbiError)
			if jsonErr := c.JSON(status, finalErr); jsonErr != nil {
				logger.Error(jsonErr.Error())
				c.Response().Status = http.StatusInternalServerError
			}
			return
		}
		logger.Error(errLoggedMsg)
		if echoError, ok := err.(*echo.HTTPError); ok {
			if jsonError, ok := echoError.Internal.(*json.UnmarshalTypeError); ok {
				respond(c, http.StatusBadRequest, fmt.Sprintf("invalid JSON payload, field %s is incorrect", jsonError.Field))
				return
			}
			switch {
			case echoError.Code == http.StatusBadRequest && strings.Contains(echoError.Error(), "Field validation"):
				respond(c, http.StatusBadRequest, strings.Split(fmt.Sprintf("%+v", echoError.Message), "\n")...)
				return
			case echoError.Code == http.StatusMethodNotAllowed:
				respond(c, http.StatusMethodNotAllowed, "method not allowed")
				return
			case echoError.Code == http.StatusNotFound:
				respond(c, http.StatusNotFound, "not found")
				return
			}
		}
		respond(c, http.StatusInternalServerError, "internal server error")
	}
}

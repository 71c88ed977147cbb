package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (b *Builder) GenerateReport(ec echo.Context) error {
	report, err := b.platform.GenerateReport(ec.Request().Context())
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, report)
}

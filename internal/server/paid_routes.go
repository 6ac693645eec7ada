package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tomuthu-engineer/moibook/internal/form"
	"github.com/tomuthu-engineer/moibook/internal/model"
)

type paidFormData struct {
	Input  form.PaidInput
	Errors *form.ValidationError
}

func (s *Server) paidFormHandler(c echo.Context) error {
	return s.render(c, http.StatusOK, "paid_form.html", "Paid Moi Entry", paidFormData{Input: form.NewPaidInput(s.now())}, nil)
}

func (s *Server) createPaidHandler(c echo.Context) error {
	var in form.PaidInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Malformed request")
	}

	entry, err := form.NewPaidEntry(in, s.now())
	if err != nil {
		ve, _ := form.AsValidationError(err)
		return s.render(c, http.StatusUnprocessableEntity, "paid_form.html", "Paid Moi Entry", paidFormData{Input: in, Errors: ve}, nil)
	}

	if err := s.client(c).CreatePaid(c.Request().Context(), entry); err != nil {
		if s.backendFailed(c, "create-paid", err) {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return s.render(c, http.StatusBadGateway, "paid_form.html", "Paid Moi Entry", paidFormData{Input: in},
			&flash{Kind: flashError, Message: "Could not save the paid moi entry."})
	}

	setFlash(c, flashSuccess, "Paid moi entry saved.")
	return c.Redirect(http.StatusSeeOther, "/")
}

type paidListData struct {
	Query   string
	Entries []model.PaidMoiEntry
	Total   float64
}

func (s *Server) paidListHandler(c echo.Context) error {
	q := c.QueryParam("q")

	entries, err := s.client(c).PaidEntries(c.Request().Context())
	if err != nil {
		if s.backendFailed(c, "list-paid", err) {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return s.render(c, http.StatusBadGateway, "paid_list.html", "Paid Moi", paidListData{Query: q},
			&flash{Kind: flashError, Message: "Could not load paid moi entries."})
	}

	data := paidListData{Query: q, Entries: model.FilterPaid(entries, q)}
	for _, e := range data.Entries {
		data.Total += e.Amount
	}
	return s.render(c, http.StatusOK, "paid_list.html", "Paid Moi", data, nil)
}

func (s *Server) paidReportHandler(c echo.Context) error {
	report, err := s.client(c).PaidReport(c.Request().Context())
	if err != nil {
		if s.backendFailed(c, "paid-report", err) {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		setFlash(c, flashError, "Could not download the report.")
		return c.Redirect(http.StatusSeeOther, "/view-all-paid-moi")
	}
	return sendReport(c, report)
}

func sendReport(c echo.Context, report model.Report) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", report.Filename))
	return c.Blob(http.StatusOK, report.ContentType, report.Data)
}

package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tomuthu-engineer/moibook/internal/form"
)

type catalogOption struct {
	form.FieldDescriptor
	Checked bool
}

type eventFormData struct {
	Input   form.EventInput
	Options []catalogOption
	Errors  *form.ValidationError
}

func newEventFormData(in form.EventInput, ve *form.ValidationError) eventFormData {
	catalog := form.Catalog()
	options := make([]catalogOption, len(catalog))
	for i, d := range catalog {
		options[i] = catalogOption{FieldDescriptor: d, Checked: d.Required || in.Selected(d.Id)}
	}
	return eventFormData{Input: in, Options: options, Errors: ve}
}

func (s *Server) eventFormHandler(c echo.Context) error {
	return s.render(c, http.StatusOK, "event_form.html", "Create Event", newEventFormData(form.NewEventInput(s.now()), nil), nil)
}

func (s *Server) createEventHandler(c echo.Context) error {
	var in form.EventInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Malformed request")
	}

	event, err := form.NewEvent(in)
	if err != nil {
		ve, _ := form.AsValidationError(err)
		return s.render(c, http.StatusUnprocessableEntity, "event_form.html", "Create Event", newEventFormData(in, ve), nil)
	}

	if err := s.client(c).CreateEvent(c.Request().Context(), event); err != nil {
		if s.backendFailed(c, "create-event", err) {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return s.render(c, http.StatusBadGateway, "event_form.html", "Create Event", newEventFormData(in, nil),
			&flash{Kind: flashError, Message: "Could not create the event."})
	}

	setFlash(c, flashSuccess, "Event \""+event.EventName+"\" created.")
	return c.Redirect(http.StatusSeeOther, "/received-moi-entry")
}

package server

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/tomuthu-engineer/moibook/internal/form"
	"github.com/tomuthu-engineer/moibook/internal/model"
)

type eventItem struct {
	model.EventEntity
	FormURL string
	ListURL string
}

// entryFormURL carries the event's field selection and name to the entry
// form in the query string.
func entryFormURL(eventId, name string, enabled form.EnabledFields) string {
	q := url.Values{}
	if fields := enabled.Query(); fields != "" {
		q.Set("fields", fields)
	}
	if name != "" {
		q.Set("name", name)
	}

	u := "/received-moi-form/" + url.PathEscape(eventId)
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (s *Server) eventItems(c echo.Context) ([]eventItem, error) {
	events, err := s.client(c).Events(c.Request().Context())
	if err != nil {
		return nil, err
	}

	items := make([]eventItem, len(events))
	for i, e := range events {
		items[i] = eventItem{
			EventEntity: e,
			FormURL:     entryFormURL(e.Id, e.EventName, form.EnabledFieldsFrom(e.FormFields)),
			ListURL:     "/view-all-received-moi/" + url.PathEscape(e.Id),
		}
	}
	return items, nil
}

func (s *Server) eventPickerHandler(c echo.Context) error {
	items, err := s.eventItems(c)
	if err != nil {
		if s.backendFailed(c, "list-events", err) {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return s.render(c, http.StatusBadGateway, "event_picker.html", "Received Moi Entry", []eventItem(nil),
			&flash{Kind: flashError, Message: "Could not load events."})
	}
	return s.render(c, http.StatusOK, "event_picker.html", "Received Moi Entry", items, nil)
}

type receivedFormData struct {
	EventId   string
	EventName string
	Action    string
	Fields    []form.RenderedField
}

// entryForm rebuilds the event's form from the selection carried in the query
// string. Without one only the required fields are shown.
func entryForm(c echo.Context) (*form.EntryForm, string) {
	eventId := c.Param("eventId")
	enabled := form.ParseEnabledFields(c.QueryParams()["fields"])
	name := c.QueryParam("name")

	return form.NewEntryForm(eventId, enabled), entryFormURL(eventId, name, enabled)
}

func (s *Server) renderEntryForm(c echo.Context, status int, f *form.EntryForm, action string, values form.FlatValues, err error, now *flash) error {
	data := receivedFormData{
		EventId:   f.EventId,
		EventName: c.QueryParam("name"),
		Action:    action,
		Fields:    f.Render(values, err),
	}
	return s.render(c, status, "received_form.html", "Received Moi Entry", data, now)
}

func (s *Server) receivedFormHandler(c echo.Context) error {
	f, action := entryForm(c)
	return s.renderEntryForm(c, http.StatusOK, f, action, f.Defaults(s.now()), nil, nil)
}

// createReceivedHandler submits one entry. On success the user stays on a
// fresh form of the same event.
func (s *Server) createReceivedHandler(c echo.Context) error {
	f, action := entryForm(c)

	params, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Malformed request")
	}
	values := form.ValuesFrom(params, f.Fields)

	submission, err := f.Submit(values)
	if err != nil {
		return s.renderEntryForm(c, http.StatusUnprocessableEntity, f, action, values, err, nil)
	}

	if err := s.client(c).CreateReceived(c.Request().Context(), submission); err != nil {
		if s.backendFailed(c, "create-received", err) {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return s.renderEntryForm(c, http.StatusBadGateway, f, action, values, nil,
			&flash{Kind: flashError, Message: "Could not save the received moi entry."})
	}

	setFlash(c, flashSuccess, "Received moi entry saved.")
	return c.Redirect(http.StatusSeeOther, action)
}

func (s *Server) receivedEventsHandler(c echo.Context) error {
	items, err := s.eventItems(c)
	if err != nil {
		if s.backendFailed(c, "list-events", err) {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return s.render(c, http.StatusBadGateway, "received_events.html", "Received Moi", []eventItem(nil),
			&flash{Kind: flashError, Message: "Could not load events."})
	}
	return s.render(c, http.StatusOK, "received_events.html", "Received Moi", items, nil)
}

type receivedListData struct {
	EventId     string
	Query       string
	Entries     []model.ReceivedMoiEntry
	DownloadURL string
}

func (s *Server) receivedListHandler(c echo.Context) error {
	eventId := c.Param("eventId")
	data := receivedListData{
		EventId:     eventId,
		Query:       c.QueryParam("q"),
		DownloadURL: "/view-all-received-moi/" + url.PathEscape(eventId) + "/download",
	}

	entries, err := s.client(c).ReceivedEntries(c.Request().Context(), eventId)
	if err != nil {
		if s.backendFailed(c, "list-received", err) {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return s.render(c, http.StatusBadGateway, "received_list.html", "Received Moi", data,
			&flash{Kind: flashError, Message: "Could not load received moi entries."})
	}

	data.Entries = model.FilterReceived(entries, data.Query)
	return s.render(c, http.StatusOK, "received_list.html", "Received Moi", data, nil)
}

func (s *Server) receivedReportHandler(c echo.Context) error {
	eventId := c.Param("eventId")

	report, err := s.client(c).ReceivedReport(c.Request().Context(), eventId)
	if err != nil {
		if s.backendFailed(c, "received-report", err) {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		setFlash(c, flashError, "Could not download the report.")
		return c.Redirect(http.StatusSeeOther, "/view-all-received-moi/"+url.PathEscape(eventId))
	}
	return sendReport(c, report)
}

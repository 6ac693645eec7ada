package api

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/tomuthu-engineer/moibook/internal/model"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// download fetches a binary export. The backend's Content-Disposition name
// wins over fallbackName when present.
func (c *Client) download(ctx context.Context, path, fallbackName string) (model.Report, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return model.Report{}, err
	}

	res, err := c.send(req)
	if err != nil {
		return model.Report{}, err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return model.Report{}, fmt.Errorf("GET %s: read body: %w", path, err)
	}

	report := model.Report{
		Filename:    fallbackName,
		ContentType: res.Header.Get("Content-Type"),
		Data:        data,
	}
	if report.ContentType == "" || report.ContentType == "application/octet-stream" {
		report.ContentType = xlsxContentType
	}
	if _, params, err := mime.ParseMediaType(res.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		report.Filename = params["filename"]
	}

	return report, nil
}

package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/tomuthu-engineer/moibook/internal/model"
)

func (c *Client) CreateEvent(ctx context.Context, event model.EventCreateRequest) error {
	return c.do(ctx, http.MethodPost, "/event/create", event, nil)
}

func (c *Client) Events(ctx context.Context) ([]model.EventEntity, error) {
	var events model.EventCollection
	if err := c.do(ctx, http.MethodGet, "/event/all", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) Event(ctx context.Context, id string) (model.EventEntity, error) {
	var event model.EventEntity
	err := c.do(ctx, http.MethodGet, "/event/"+url.PathEscape(id), nil, &event)
	return event, err
}

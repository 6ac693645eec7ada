package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomuthu-engineer/moibook/internal/model"
)

var ErrNoTokens = errors.New("verify-otp: no access token in response")

func (c *Client) RequestOTP(ctx context.Context, mobile string) error {
	return c.do(ctx, http.MethodPost, "/auth/request-otp", model.RequestOTPDTO{Mobile: mobile}, nil)
}

func (c *Client) VerifyOTP(ctx context.Context, mobile, otp string) (model.TokensDTO, error) {
	var tokens model.TokensDTO
	err := c.do(ctx, http.MethodPost, "/auth/verify-otp", model.VerifyOTPDTO{Mobile: mobile, Otp: otp}, &tokens)
	if err != nil {
		return model.TokensDTO{}, err
	}
	if tokens.AccessToken == "" {
		return model.TokensDTO{}, ErrNoTokens
	}
	return tokens, nil
}

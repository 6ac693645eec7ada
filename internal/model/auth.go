package model

type RequestOTPDTO struct {
	Mobile string `json:"mobile" form:"mobile" validate:"required,numeric,min=10,max=15"`
}

type VerifyOTPDTO struct {
	Mobile string `json:"mobile" form:"mobile" validate:"required,numeric,min=10,max=15"`
	Otp    string `json:"otp" form:"otp" validate:"required,numeric,len=6"`
}

type TokensDTO struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

package model

import "time"

type NewAuthSessionData struct {
	Id           string
	Mobile       string
	AccessToken  []byte
	RefreshToken []byte
	CreatedAt    time.Time
	Expiry       time.Time
}

// AuthSessionEntity is a stored session. Id is the hashed session token and
// both backend tokens are sealed.
type AuthSessionEntity struct {
	Id           string
	Mobile       string
	AccessToken  []byte
	RefreshToken []byte
	CreatedAt    time.Time
	Expiry       time.Time
}

// AuthSession is the unsealed session handed to the backend client. It is
// created by OTP verification and is gone after logout or Expiry.
type AuthSession struct {
	Id           string
	Mobile       string
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

func (s *AuthSession) Valid(now time.Time) bool {
	if s == nil || s.AccessToken == "" {
		return false
	}
	return s.Expiry.IsZero() || now.Before(s.Expiry)
}

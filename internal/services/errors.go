package services

import "errors"

var (
	ErrUserExists         = errors.New("user already exists")
	ErrCreateUser         = errors.New("failed to create user")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrIncorrectPassword  = errors.New("incorrect password")
	ErrGoogleAuth         = errors.New("fail to authenticate")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token has expired")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrEmailNotFound      = errors.New("email not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrTrackNotFound      = errors.New("track not found")
	ErrProcessNotFound    = errors.New("process not found")
	ErrInvalidYoutubeURL  = errors.New("invalid youtube url")
	ErrInvalidDuration    = errors.New("invalid exercise duration")
	ErrUnsupportedMedia   = errors.New("unsupported media type")
	ErrUpstream           = errors.New("processor request failed")
)

package model

// Report is a binary export produced by the backend.
type Report struct {
	Filename    string
	ContentType string
	Data        []byte
}

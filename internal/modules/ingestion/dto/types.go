package dto

import "time"

type SelectFileInput struct {
	Path string
}

type FileOutput struct {
	Name  string
	Path  string
	Size  int64
	Pages int
}

type SubmitOutput struct {
	RequestID string
	FileName  string
	Chunks    []string
	Degraded  bool
	Elapsed   time.Duration
}

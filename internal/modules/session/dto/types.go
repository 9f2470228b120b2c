package dto

import "time"

type FlowOutput struct {
	Status    string
	Busy      bool
	Message   string
	Detail    string
	RequestID string
	UpdatedAt time.Time
}

type FileOutput struct {
	Name  string
	Path  string
	Size  int64
	Pages int
}

type SnapshotOutput struct {
	File      FileOutput
	HasFile   bool
	Chunks    []string
	Question  string
	Answer    string
	Ingestion FlowOutput
	Query     FlowOutput
}

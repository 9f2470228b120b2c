package dto

import "time"

type SetQuestionInput struct {
	Text string
}

type AskOutput struct {
	RequestID string
	Question  string
	Answer    string
	Found     bool
	Elapsed   time.Duration
}

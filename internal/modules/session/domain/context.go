package domain

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"neuradocs/internal/platform/clock"
)

type FlowStatus int

const (
	FlowIdle FlowStatus = iota
	FlowInFlight
	FlowSucceeded
	FlowFailed
)

func (s FlowStatus) String() string {
	switch s {
	case FlowInFlight:
		return "in_flight"
	case FlowSucceeded:
		return "succeeded"
	case FlowFailed:
		return "failed"
	default:
		return "idle"
	}
}

type Flow string

const (
	FlowIngestion Flow = "ingestion"
	FlowQuery     Flow = "query"
)

// Payload opens the selected file's bytes. Every call returns a fresh reader.
type Payload func() (io.ReadCloser, error)

type SelectedFile struct {
	Name    string
	Path    string
	Size    int64
	Pages   int
	Payload Payload
}

// Ticket identifies one attempt on a flow. Results are applied only while the
// ticket's generation is the latest one issued for that flow.
type Ticket struct {
	Flow      Flow
	RequestID string
	File      SelectedFile
	Question  string
	gen       uint64
}

type FlowRecord struct {
	Status    FlowStatus
	Message   string
	Detail    string
	RequestID string
	UpdatedAt time.Time
}

type flowState struct {
	FlowRecord
	gen    uint64
	cancel context.CancelFunc
}

// begin opens a new generation and cancels the attempt it replaces.
func (f *flowState) begin(parent context.Context, requestID string, now time.Time) (uint64, context.Context) {
	if f.cancel != nil {
		f.cancel()
	}
	f.gen++
	ctx, cancel := context.WithCancel(parent)
	f.cancel = cancel
	f.FlowRecord = FlowRecord{Status: FlowInFlight, RequestID: requestID, UpdatedAt: now}
	return f.gen, ctx
}

func (f *flowState) settle(gen uint64, status FlowStatus, message, detail string, now time.Time) bool {
	if gen != f.gen || f.Status != FlowInFlight {
		return false
	}
	f.cancel()
	f.cancel = nil
	f.Status = status
	f.Message = message
	f.Detail = detail
	f.UpdatedAt = now
	return true
}

// invalidate drops any in-flight attempt and returns the flow to idle.
func (f *flowState) invalidate(now time.Time) {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.gen++
	f.FlowRecord = FlowRecord{Status: FlowIdle, UpdatedAt: now}
}

// Context is the document state shared by the ingestion and query flows.
// Reads go through Snapshot; writes go through the owner handles returned by
// Ingestion and Query, each of which can only touch its own fields.
type Context struct {
	mu    sync.Mutex
	clock clock.Clock

	file     *SelectedFile
	chunks   []string
	question string
	answer   string

	ingestion flowState
	query     flowState
}

func NewContext(clk clock.Clock) *Context {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Context{clock: clk}
}

type Snapshot struct {
	File      SelectedFile
	HasFile   bool
	Chunks    []string
	Question  string
	Answer    string
	Ingestion FlowRecord
	Query     FlowRecord
}

func (c *Context) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := Snapshot{
		Chunks:    append([]string{}, c.chunks...),
		Question:  c.question,
		Answer:    c.answer,
		Ingestion: c.ingestion.FlowRecord,
		Query:     c.query.FlowRecord,
	}
	if c.file != nil {
		snap.File = *c.file
		snap.HasFile = true
	}
	return snap
}

func (c *Context) Ingestion() IngestionState { return IngestionState{c: c} }

func (c *Context) Query() QueryState { return QueryState{c: c} }

// IngestionState is the write handle for SelectedFile, ChunkCollection and
// the ingestion flow record.
type IngestionState struct{ c *Context }

func (s IngestionState) SelectFile(file SelectedFile) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	s.c.file = &file
}

// ClearFile drops the selection and the chunks extracted for it. An
// extraction still in flight is invalidated.
func (s IngestionState) ClearFile() {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	s.c.file = nil
	s.c.chunks = nil
	s.c.ingestion.invalidate(s.c.clock.Now())
}

// Begin starts an extraction attempt for the currently selected file. The
// chunk collection is cleared so chunks of an older file are never shown
// next to a new attempt. It reports false when no file is selected.
func (s IngestionState) Begin(parent context.Context, requestID string) (Ticket, context.Context, bool) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if s.c.file == nil {
		return Ticket{}, nil, false
	}
	gen, ctx := s.c.ingestion.begin(parent, requestID, s.c.clock.Now())
	s.c.chunks = nil
	return Ticket{Flow: FlowIngestion, RequestID: requestID, File: *s.c.file, gen: gen}, ctx, true
}

// Succeed replaces the chunk collection. It reports false, changing nothing,
// when the ticket has been superseded.
func (s IngestionState) Succeed(t Ticket, chunks []string, message string) bool {
	if t.Flow != FlowIngestion {
		return false
	}
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if !s.c.ingestion.settle(t.gen, FlowSucceeded, message, "", s.c.clock.Now()) {
		return false
	}
	s.c.chunks = append(make([]string, 0, len(chunks)), chunks...)
	return true
}

func (s IngestionState) Fail(t Ticket, message, detail string) bool {
	if t.Flow != FlowIngestion {
		return false
	}
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	return s.c.ingestion.settle(t.gen, FlowFailed, message, detail, s.c.clock.Now())
}

// QueryState is the write handle for Question, Answer and the query flow
// record.
type QueryState struct{ c *Context }

func (s QueryState) SetQuestion(text string) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	s.c.question = text
}

func (s QueryState) Question() string {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	return s.c.question
}

// Begin starts an ask attempt for the current question and clears the
// previous answer. It reports false, changing nothing, when the question is
// blank.
func (s QueryState) Begin(parent context.Context, requestID string) (Ticket, context.Context, bool) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if strings.TrimSpace(s.c.question) == "" {
		return Ticket{}, nil, false
	}
	gen, ctx := s.c.query.begin(parent, requestID, s.c.clock.Now())
	s.c.answer = ""
	return Ticket{Flow: FlowQuery, RequestID: requestID, Question: s.c.question, gen: gen}, ctx, true
}

func (s QueryState) Succeed(t Ticket, answer, message string) bool {
	return s.settle(t, FlowSucceeded, answer, message, "")
}

// Fail stores sentinel as the answer so the failure is visible in the answer
// field itself.
func (s QueryState) Fail(t Ticket, sentinel, message, detail string) bool {
	return s.settle(t, FlowFailed, sentinel, message, detail)
}

func (s QueryState) settle(t Ticket, status FlowStatus, answer, message, detail string) bool {
	if t.Flow != FlowQuery {
		return false
	}
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	if !s.c.query.settle(t.gen, status, message, detail, s.c.clock.Now()) {
		return false
	}
	s.c.answer = answer
	return true
}

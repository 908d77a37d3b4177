package driver

import "time"

// Stage is a step a manifest goes through in Generate.
type Stage string

const (
	StageLoad   Stage = "load"
	StageLower  Stage = "lower"
	StageAssign Stage = "assign"
	StageEmit   Stage = "emit"
)

// Status captures progress within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusCached  Status = "cached"
	StatusError   Status = "error"
)

// Event reports progress of one manifest.
type Event struct {
	Path    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. OnEvent is called from the
// worker goroutines and must be safe for concurrent use.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(ev Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- ev
}

// progress is a nil-safe view of Options.Progress for one manifest.
type progress struct {
	sink  ProgressSink
	path  string
	start time.Time
}

func (p progress) stage(st Stage) {
	if p.sink != nil {
		p.sink.OnEvent(Event{Path: p.path, Stage: st, Status: StatusWorking, Elapsed: time.Since(p.start)})
	}
}

func (p progress) finish(res *Result) {
	if p.sink == nil {
		return
	}
	ev := Event{Path: p.path, Status: StatusDone, Err: res.Err, Elapsed: time.Since(p.start)}
	switch {
	case res.Err != nil:
		ev.Status = StatusError
	case res.Cached:
		ev.Status = StatusCached
	}
	p.sink.OnEvent(ev)
}

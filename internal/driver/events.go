package driver

import "time"

// Stage identifies the step a file is in.
type Stage string

const (
	// StageLoad is reading the file from disk.
	StageLoad Stage = "load"
	// StageLex is lexing the file contents.
	StageLex Stage = "lex"
)

// Status reports the progress of a stage.
type Status uint8

const (
	// StatusQueued marks a file waiting for a worker.
	StatusQueued Status = iota
	// StatusWorking marks a stage in progress.
	StatusWorking
	// StatusDone marks a file that lexed successfully.
	StatusDone
	// StatusError marks a file that failed to load or lex.
	StatusError
)

// Event is a progress update for one file.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use; TokenizeDir calls OnEvent from its workers.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink == nil {
		return
	}
	sink.OnEvent(evt)
}

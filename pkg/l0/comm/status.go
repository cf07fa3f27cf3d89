package comm

import (
	"strconv"
	"strings"
)

// Status lines sent back by the firmware.
const (
	StatusLineStopped    = "STOPPED"
	StatusLineResetDone  = "RESET_DONE"
	StatusLineDone       = "DONE"
	StatusLineBufferFull = "ERROR: command buffer full"

	StatusPrefixTime  = "TIME:"
	StatusPrefixFatal = "RemoteControl ERROR: "
	StatusPrefixDebug = "RemoteControl: "
)

// StatusKind classifies a status line.
type StatusKind int

// Status kinds.
const (
	StatusUnknown StatusKind = iota
	StatusStopped
	StatusResetDone
	StatusTime
	StatusDone
	StatusBufferFull
	StatusFatal
	StatusDebug
)

var statusKindNames = map[StatusKind]string{
	StatusUnknown:    "unknown",
	StatusStopped:    "stopped",
	StatusResetDone:  "reset-done",
	StatusTime:       "time",
	StatusDone:       "done",
	StatusBufferFull: "buffer-full",
	StatusFatal:      "fatal",
	StatusDebug:      "debug",
}

// String implements fmt.Stringer.
func (k StatusKind) String() string {
	if name, ok := statusKindNames[k]; ok {
		return name
	}
	return "StatusKind(" + strconv.Itoa(int(k)) + ")"
}

// Status is a parsed status line.
type Status struct {
	Kind StatusKind
	Line string
	// Time is the device time carried by a StatusTime line.
	Time uint32
	// Message is the text following the prefix of fatal and debug lines.
	Message string
}

// ParseStatus classifies a status line. Lines which can't be recognized
// are reported as StatusUnknown.
func ParseStatus(line string) Status {
	line = strings.TrimRight(line, "\r\n")
	st := Status{Line: line}
	switch {
	case line == StatusLineStopped:
		st.Kind = StatusStopped
	case line == StatusLineResetDone:
		st.Kind = StatusResetDone
	case line == StatusLineDone:
		st.Kind = StatusDone
	case line == StatusLineBufferFull:
		st.Kind = StatusBufferFull
	case strings.HasPrefix(line, StatusPrefixTime):
		val, err := strconv.ParseUint(strings.TrimSpace(line[len(StatusPrefixTime):]), 10, 32)
		if err == nil {
			st.Kind, st.Time = StatusTime, uint32(val)
		}
	case strings.HasPrefix(line, StatusPrefixFatal):
		st.Kind, st.Message = StatusFatal, line[len(StatusPrefixFatal):]
	case strings.HasPrefix(line, StatusPrefixDebug):
		st.Kind, st.Message = StatusDebug, line[len(StatusPrefixDebug):]
	}
	return st
}

// TimeLine formats the reply of a GET_TIME packet.
func TimeLine(now uint32) string {
	return StatusPrefixTime + strconv.FormatUint(uint64(now), 10)
}

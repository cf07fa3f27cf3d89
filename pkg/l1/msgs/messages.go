package msgs

import (
	"github.com/golang/protobuf/proto"

	"github.com/robotalks/picker/pkg/l0/comm"
	pb "github.com/robotalks/picker/pkg/proto/picker/l1/v1"
)

// CommandKind selects the packet a Command is translated to.
type CommandKind = pb.CommandKind

// Command kinds.
const (
	CommandUnknown = pb.CommandKind_UNKNOWN
	CommandSync    = pb.CommandKind_SYNC
	CommandPick    = pb.CommandKind_PICK
	CommandEnd     = pb.CommandKind_END
	CommandStop    = pb.CommandKind_STOP
	CommandReset   = pb.CommandKind_RESET
	CommandTime    = pb.CommandKind_TIME
)

// Serializable is a message with a protobuf representation.
type Serializable interface {
	Serializable() proto.Message
}

// Command is a request to the device.
type Command struct {
	pb.Command
}

// Serializable implements Serializable.
func (m *Command) Serializable() proto.Message { return &m.Command }

// Status is a status line reported by the device, or the reply of a
// command.
type Status struct {
	pb.Status
}

// Serializable implements Serializable.
func (m *Status) Serializable() proto.Message { return &m.Status }

// StatusKindError is the Status kind of a failed command.
const StatusKindError = "error"

// NewStatus converts a status line.
func NewStatus(st comm.Status) *Status {
	return &Status{Status: pb.Status{
		Kind:    st.Kind.String(),
		Line:    st.Line,
		Time:    st.Time,
		Message: st.Message,
	}}
}

// NewTimeStatus creates the reply of a TIME command.
func NewTimeStatus(t, seq uint32) *Status {
	return &Status{Status: pb.Status{
		Kind:     comm.StatusTime.String(),
		Line:     comm.TimeLine(t),
		Time:     t,
		Sequence: seq,
	}}
}

// NewErrorStatus creates the reply of a failed command.
func NewErrorStatus(err error, seq uint32) *Status {
	return &Status{Status: pb.Status{Kind: StatusKindError, Message: err.Error(), Sequence: seq}}
}

// Encode encodes a message.
func Encode(msg Serializable) ([]byte, error) {
	return proto.Marshal(msg.Serializable())
}

// DecodeCommand decodes a Command.
func DecodeCommand(data []byte) (*Command, error) {
	var cmd Command
	if err := proto.Unmarshal(data, &cmd.Command); err != nil {
		return nil, err
	}
	return &cmd, nil
}

// DecodeStatus decodes a Status.
func DecodeStatus(data []byte) (*Status, error) {
	var st Status
	if err := proto.Unmarshal(data, &st.Status); err != nil {
		return nil, err
	}
	return &st, nil
}

// ResetAngles converts Angles for a RESET packet. Missing angles are
// taken from neutral.
func (m *Command) ResetAngles(count int, neutral []int16) []int16 {
	angles := make([]int16, count)
	copy(angles, neutral)
	for n := 0; n < count && n < len(m.Angles); n++ {
		angles[n] = int16(m.Angles[n])
	}
	return angles
}

package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/picker/pkg/l0/comm"
)

func TestParseUint32(t *testing.T) {
	v, err := ParseUint32("DELAY", "1500")
	require.NoError(t, err)
	assert.Equal(t, uint32(1500), v)

	v, err = ParseUint32("TIME", "0x10")
	require.NoError(t, err)
	assert.Equal(t, uint32(16), v)

	_, err = ParseUint32("DELAY", "-1")
	assert.Error(t, err)
	_, err = ParseUint32("DELAY", "4294967296")
	assert.Error(t, err)
}

func TestParseAngles(t *testing.T) {
	neutral := make([]int16, comm.DefaultResetCount)
	for n := range neutral {
		neutral[n] = 90
	}
	angles, err := ParseAngles([]string{"10", "-1"}, neutral)
	require.NoError(t, err)
	require.Len(t, angles, comm.DefaultResetCount)
	assert.Equal(t, int16(10), angles[0])
	assert.Equal(t, int16(-1), angles[1])
	assert.Equal(t, int16(90), angles[2])
	assert.Equal(t, int16(90), neutral[0])

	angles, err = ParseAngles([]string{"1", "2"}, []int16{90, 90, 90, 90})
	require.NoError(t, err)
	assert.Equal(t, []int16{1, 2, 90, 90}, angles)
	_, err = ParseAngles([]string{"1", "2"}, []int16{90})
	assert.Error(t, err)

	_, err = ParseAngles([]string{"x"}, neutral)
	assert.Error(t, err)
	_, err = ParseAngles(make([]string, comm.DefaultResetCount+1), neutral)
	assert.Error(t, err)
}

func TestResults(t *testing.T) {
	assert.Equal(t, "1234", TimeResult{Time: 1234}.String())
	st := statusResult(comm.ParseStatus("DONE\r\n"))
	assert.Equal(t, "DONE", st.String())
	assert.Equal(t, comm.StatusDone.String(), st.Kind)
}

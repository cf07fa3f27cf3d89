// Package env provides the environment of host side processes.
package env

import (
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

const appID = "picker"

// MachineID retrieves the ID identifying the machine, hashed for the
// application so the raw ID isn't exposed on the broker.
func MachineID() (string, error) {
	id, err := machineid.ProtectedID(appID)
	if err != nil {
		return "", err
	}
	if len(id) > 16 {
		id = id[:16]
	}
	return id, nil
}

// DeviceID is MachineID, or the host name if the machine ID isn't
// available.
func DeviceID() string {
	id, err := MachineID()
	if err == nil {
		return id
	}
	glog.Warningf("machine id unavailable: %v", err)
	if id, err = os.Hostname(); err == nil {
		return id
	}
	return appID
}

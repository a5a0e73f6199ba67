package env

import (
	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

// MachineID retrieves an ID identifying the machine, protected
// with the application name so the raw id isn't published.
// It falls back to "unknown" when the id is unavailable.
func MachineID() string {
	id, err := machineid.ProtectedID("fuel")
	if err != nil {
		glog.Warningf("machine id unavailable: %v", err)
		return "unknown"
	}
	if len(id) > 12 {
		id = id[:12]
	}
	return id
}

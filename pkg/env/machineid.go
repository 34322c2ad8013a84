package env

import (
	"github.com/denisbrodbeck/machineid"
)

const appID = "usbadda"

// MachineID retrieves an ID identifying the machine, hashed with the
// application ID so the raw machine ID isn't exposed. It returns an empty
// string if the machine ID is unavailable.
func MachineID() string {
	id, err := machineid.ProtectedID(appID)
	if err != nil {
		return ""
	}
	return id
}

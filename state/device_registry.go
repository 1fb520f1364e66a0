package state

import (
	"github.com/shimmeringbee/remote/capabilities"
	"sort"
	"sync"
)

type DeviceMapper interface {
	Device(string) (capabilities.Power, bool)
	Names() []string
}

var _ DeviceMapper = (*DeviceRegistry)(nil)

type RegistryError string

func (e RegistryError) Error() string {
	return string(e)
}

const ErrDuplicateDevice = RegistryError("device name already registered")

type DeviceRegistry struct {
	lock sync.RWMutex

	deviceByName map[string]capabilities.Power
}

func NewDeviceRegistry() *DeviceRegistry {
	return &DeviceRegistry{
		deviceByName: map[string]capabilities.Power{},
	}
}

func (r *DeviceRegistry) Add(name string, d capabilities.Power) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, found := r.deviceByName[name]; found {
		return ErrDuplicateDevice
	}

	r.deviceByName[name] = d
	return nil
}

func (r *DeviceRegistry) Device(name string) (capabilities.Power, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	d, found := r.deviceByName[name]
	return d, found
}

func (r *DeviceRegistry) Names() []string {
	r.lock.RLock()
	defer r.lock.RUnlock()

	names := make([]string, 0, len(r.deviceByName))
	for name := range r.deviceByName {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

package capabilities

import (
	"context"
	"fmt"
)

type Capability uint16

const (
	PowerFlag         Capability = 0x0001
	ChannelSelectFlag Capability = 0x0002
	VolumeAdjustFlag  Capability = 0x0003
)

var CapabilityNameMapping = map[Capability]string{
	PowerFlag:         "Power",
	ChannelSelectFlag: "ChannelSelect",
	VolumeAdjustFlag:  "VolumeAdjust",
}

func (c Capability) String() string {
	if name, found := CapabilityNameMapping[c]; found {
		return name
	}

	return fmt.Sprintf("Unknown(0x%04x)", uint16(c))
}

// Power is the base lifecycle every controllable device shares.
type Power interface {
	Activate(ctx context.Context) error
	Deactivate(ctx context.Context) error
}

type ChannelSelect interface {
	Power
	SelectChannel(ctx context.Context, channel int) error
}

type VolumeAdjust interface {
	Power
	AdjustVolume(ctx context.Context, level int) error
}

// Supported returns the capabilities the target implements, in flag order.
func Supported(target any) []Capability {
	var found []Capability

	if _, ok := target.(Power); ok {
		found = append(found, PowerFlag)
	}

	if _, ok := target.(ChannelSelect); ok {
		found = append(found, ChannelSelectFlag)
	}

	if _, ok := target.(VolumeAdjust); ok {
		found = append(found, VolumeAdjustFlag)
	}

	return found
}

func Has(target any, c Capability) bool {
	for _, s := range Supported(target) {
		if s == c {
			return true
		}
	}

	return false
}

package device

import "github.com/google/uuid"

type PowerChanged struct {
	Device uuid.UUID
	Name   string
	State  PowerState
}

type ChannelChanged struct {
	Device  uuid.UUID
	Name    string
	Channel int
}

type VolumeChanged struct {
	Device uuid.UUID
	Name   string
	Level  int
}

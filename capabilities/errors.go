package capabilities

type CapabilityError string

func (e CapabilityError) Error() string {
	return string(e)
}

const (
	ErrUnsupportedOperation = CapabilityError("operation not available on device")
	ErrInvalidArgument      = CapabilityError("operation rejected arguments")
	ErrDeviceNotPowered     = CapabilityError("device is not powered")
)

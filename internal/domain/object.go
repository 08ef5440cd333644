package domain

// Object is an opaque typed payload stored on a node. Bound is the
// object's own local space bound, used when aggregating node bounds.
type Object struct {
	Type  string
	Bound Box3
	Data  []byte
}

// Channel names a time sampled channel of a node
type Channel string

const (
	ChannelBound     Channel = "bound"
	ChannelTransform Channel = "transform"
	ChannelObject    Channel = "object"
)

// AttributeChannel returns the channel holding the named attribute
func AttributeChannel(name string) Channel {
	return Channel("attr:" + name)
}

// Interpolates reports whether values between samples are blended.
// Other channels hold the previous sample.
func (c Channel) Interpolates() bool {
	return c == ChannelBound || c == ChannelTransform
}

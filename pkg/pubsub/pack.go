package pubsub

// Pack is a single message travelling between services. Key identifies the
// named operation, Msg carries the serialized payload.
type Pack struct {
	Key []byte
	Msg []byte
}

// Package sink holds the write-only contracts to external collaborators:
// the messaging channel, the spreadsheet mirror, and object storage. All of
// them are best-effort; callers dispatch through the background job runner
// and never wait for or observe delivery failures.
package sink

import "context"

type Message struct {
	Text      string
	Media     []byte
	MediaName string
}

// ChannelRelay sends a message to the verification channel and returns an
// external message id when the channel provides one.
type ChannelRelay interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// SheetMirror appends or replaces rows on a named worksheet, creating the
// worksheet when it does not exist yet.
type SheetMirror interface {
	Append(ctx context.Context, worksheet string, rows [][]string) error
	Replace(ctx context.Context, worksheet string, rows [][]string) error
}

// ObjectStore persists a blob and returns a durable URL.
type ObjectStore interface {
	Upload(ctx context.Context, name string, blob []byte) (string, error)
}

// Disabled variants stand in when the corresponding credentials are absent;
// deliveries silently succeed so the calling paths stay identical.

type DisabledRelay struct{}

func (DisabledRelay) Send(ctx context.Context, msg Message) (string, error) { return "", nil }

type DisabledMirror struct{}

func (DisabledMirror) Append(ctx context.Context, worksheet string, rows [][]string) error {
	return nil
}

func (DisabledMirror) Replace(ctx context.Context, worksheet string, rows [][]string) error {
	return nil
}

type DisabledStore struct{}

func (DisabledStore) Upload(ctx context.Context, name string, blob []byte) (string, error) {
	return "", nil
}

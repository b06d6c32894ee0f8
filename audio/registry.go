package audio

import "fmt"

// Channel is the runtime state of one registered channel.
type Channel struct {
	ID       ChannelID
	Settings *ChannelSettings
	Cache    *AudioCache

	Plays   Queue[PlayEvent]
	Updates Queue[SettingsEvent]
}

// Registry maps channel ids to their state. It lives on a singleton entity.
type Registry struct {
	channels map[ChannelID]*Channel
	order    []ChannelID
}

func NewRegistry() *Registry {
	return &Registry{channels: make(map[ChannelID]*Channel)}
}

// Register adds a channel. Registering the same id twice is an error.
func (r *Registry) Register(id ChannelID) (*Channel, error) {
	if id == "" {
		return nil, ErrEmptyChannelID
	}
	if _, ok := r.channels[id]; ok {
		return nil, fmt.Errorf("register %q: %w", id, ErrChannelRegistered)
	}
	ch := &Channel{
		ID:       id,
		Settings: NewChannelSettings(),
		Cache:    NewAudioCache(),
	}
	r.channels[id] = ch
	r.order = append(r.order, id)
	return ch, nil
}

func (r *Registry) Channel(id ChannelID) (*Channel, bool) {
	ch, ok := r.channels[id]
	return ch, ok
}

// Global returns the global channel, or nil before it is registered.
func (r *Registry) Global() *Channel {
	return r.channels[GlobalChannel]
}

// Channels returns every channel in registration order.
func (r *Registry) Channels() []*Channel {
	out := make([]*Channel, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.channels[id])
	}
	return out
}

// Play queues a play event on a channel.
func (r *Registry) Play(id ChannelID, evt PlayEvent) error {
	ch, ok := r.channels[id]
	if !ok {
		return fmt.Errorf("play %q on %q: %w", evt.Track(), id, ErrUnknownChannel)
	}
	ch.Plays.Push(evt)
	return nil
}

// Configure queues a settings event on a channel.
func (r *Registry) Configure(id ChannelID, evt SettingsEvent) error {
	ch, ok := r.channels[id]
	if !ok {
		return fmt.Errorf("configure %q: %w", id, ErrUnknownChannel)
	}
	ch.Updates.Push(evt)
	return nil
}

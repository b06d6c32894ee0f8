package audio

import "github.com/samber/lo"

// EffectiveVolume composes a sink volume from its channel volume, the global
// volume and the per-track volume, each clamped to [0, 1].
func EffectiveVolume(channel, global, track float64) float64 {
	return lo.Clamp(channel, 0, 1) * lo.Clamp(global, 0, 1) * lo.Clamp(track, 0, 1)
}

// NormalizedVolume is the channel volume scaled by the global volume. A nil
// global, or the global channel itself, leaves the channel volume as is.
func NormalizedVolume(channel, global *ChannelSettings) float64 {
	if channel == nil {
		return 0
	}
	g := 1.0
	if global != nil && global != channel {
		g = global.Volume()
	}
	return EffectiveVolume(channel.Volume(), g, 1)
}

// SinkVolume is the volume a sink on channel plays at for a per-track
// volume of track.
func SinkVolume(channel, global *ChannelSettings, track float64) float64 {
	return EffectiveVolume(NormalizedVolume(channel, global), 1, track)
}

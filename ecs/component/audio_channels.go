package component

import "github.com/milk9111/audiocontroller/audio"

// AudioChannels holds the channel registry on a dedicated ECS entity.
type AudioChannels struct {
	Registry *audio.Registry
}

var AudioChannelsComponent = NewComponent[AudioChannels]()

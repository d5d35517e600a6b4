package filtergraph

// EnhanceAudio builds the audio filter chain for the enhance operation:
// a highpass/lowpass pair as basic noise reduction and EBU R128 loudness
// normalization. With both switches off the chain is a passthrough.
func EnhanceAudio(denoise, normalize bool) Chain {
	var filters []Filter

	if denoise {
		filters = append(filters,
			NewFilter("highpass", Int("f", 100)),
			NewFilter("lowpass", Int("f", 8000)),
		)
	}
	if normalize {
		filters = append(filters,
			NewFilter("loudnorm",
				Int("I", -16),
				Float("TP", -1.5),
				Int("LRA", 11),
			),
		)
	}
	if len(filters) == 0 {
		filters = append(filters, NewFilter("anull"))
	}

	return NewChain(nil, nil, filters...)
}

package catalog

// staticCatalog is the built-in curriculum. Operator edits never touch this
// map; they are stored as overrides and merged in at resolve time.
var staticCatalog = map[Topic]TopicMetadata{
	TopicFundamentals: {
		ID:          TopicFundamentals,
		Icon:        "fa-wave-square",
		Color:       "#22d3ee",
		Description: "Sound wave parameters, propagation, and acoustic variables.",
		SubTopics: []SubTopic{
			{ID: "fund-params", Title: "Wave Parameters", Description: "Frequency, period, wavelength, propagation speed.", VisualID: "wave_lab", Keywords: []string{"frequency", "period", "wavelength"}},
			{ID: "fund-intensity", Title: "Power & Intensity", Description: "Amplitude, power, intensity and their relationships.", VisualID: "intensity_lab"},
			{ID: "fund-interaction", Title: "Tissue Interaction", Description: "Attenuation, absorption, reflection and refraction.", VisualID: "attenuation_lab"},
		},
	},
	TopicTransducers: {
		ID:          TopicTransducers,
		Icon:        "fa-satellite-dish",
		Color:       "#a78bfa",
		Description: "Piezoelectric elements, array construction, and beam anatomy.",
		SubTopics: []SubTopic{
			{ID: "trans-pzt", Title: "Piezoelectric Effect", Description: "PZT, resonance, damping and bandwidth.", VisualID: "pzt_lab"},
			{ID: "trans-arrays", Title: "Array Types", Description: "Linear, curved, phased and vector arrays.", VisualID: "array_lab"},
			{ID: "trans-beams", Title: "Beam Anatomy", Description: "Near zone, focus, divergence.", VisualID: "beam_lab"},
		},
	},
	TopicPulsedWave: {
		ID:          TopicPulsedWave,
		Icon:        "fa-bolt",
		Color:       "#fbbf24",
		Description: "Pulsed ultrasound parameters and the range equation.",
		SubTopics: []SubTopic{
			{ID: "pw-parameters", Title: "Pulse Parameters", Description: "PRF, PRP, duty factor, SPL.", VisualID: "pulse_lab"},
			{ID: "pw-range", Title: "Range Equation", Description: "Go-return time and depth ambiguity.", VisualID: "range_lab"},
		},
	},
	TopicDoppler: {
		ID:          TopicDoppler,
		Icon:        "fa-gauge-high",
		Color:       "#f87171",
		Description: "Doppler shift, spectral analysis, and aliasing.",
		SubTopics: []SubTopic{
			{ID: "dop-shift", Title: "Doppler Shift", Description: "The Doppler equation and angle dependence.", VisualID: "doppler_lab"},
			{ID: "dop-aliasing", Title: "Aliasing & Nyquist", Description: "Nyquist limit and aliasing remedies.", VisualID: "aliasing_lab"},
			{ID: "dop-color", Title: "Color & Power Doppler", Description: "Color flow mapping trade-offs.", VisualID: "color_lab"},
		},
	},
	TopicArtifacts: {
		ID:          TopicArtifacts,
		Icon:        "fa-ghost",
		Color:       "#94a3b8",
		Description: "Imaging assumptions and the artifacts born when they fail.",
		SubTopics: []SubTopic{
			{ID: "art-reverb", Title: "Reverberation & Comet Tail", Description: "Multiple reflections between strong interfaces.", VisualID: "reverb_lab"},
			{ID: "art-shadow", Title: "Shadowing & Enhancement", Description: "Attenuation-derived artifacts.", VisualID: "shadow_lab"},
		},
	},
	TopicBioeffects: {
		ID:          TopicBioeffects,
		Icon:        "fa-triangle-exclamation",
		Color:       "#fb923c",
		Description: "Thermal and mechanical bioeffects, ALARA, and output indices.",
		SubTopics: []SubTopic{
			{ID: "bio-thermal", Title: "Thermal Index", Description: "Heating mechanisms and TI variants.", VisualID: "thermal_lab"},
			{ID: "bio-mechanical", Title: "Mechanical Index", Description: "Cavitation and MI.", VisualID: "cavitation_lab"},
		},
	},
	TopicHemodynamics: {
		ID:          TopicHemodynamics,
		Icon:        "fa-heart-pulse",
		Color:       "#f472b6",
		Description: "Flow states, resistance, and pressure gradients.",
		SubTopics: []SubTopic{
			{ID: "hemo-flow", Title: "Flow States", Description: "Laminar, parabolic and turbulent flow.", VisualID: "flow_lab"},
			{ID: "hemo-bernoulli", Title: "Bernoulli Principle", Description: "Pressure-velocity trade-off at a stenosis.", VisualID: "stenosis_lab"},
		},
	},
	TopicQA: {
		ID:          TopicQA,
		Icon:        "fa-clipboard-check",
		Color:       "#34d399",
		Description: "Quality assurance, phantoms, and performance testing.",
		SubTopics: []SubTopic{
			{ID: "qa-phantoms", Title: "Test Phantoms", Description: "Tissue-equivalent and Doppler phantoms.", VisualID: "phantom_lab"},
		},
	},
	TopicResolution: {
		ID:          TopicResolution,
		Icon:        "fa-crosshairs",
		Color:       "#60a5fa",
		Description: "Axial, lateral, elevational and temporal resolution.",
		SubTopics: []SubTopic{
			{ID: "res-axial", Title: "Axial Resolution", Description: "SPL-driven detail along the beam.", VisualID: "axial_lab"},
			{ID: "res-temporal", Title: "Temporal Resolution", Description: "Frame rate and its enemies.", VisualID: "framerate_lab"},
		},
	},
	TopicHarmonics: {
		ID:          TopicHarmonics,
		Icon:        "fa-music",
		Color:       "#c084fc",
		Description: "Harmonic imaging and nonlinear propagation.",
		SubTopics: []SubTopic{
			{ID: "harm-tissue", Title: "Tissue Harmonics", Description: "Why harmonic beams are cleaner.", VisualID: "harmonic_lab"},
		},
	},
	TopicInstrumentation: {
		ID:          TopicInstrumentation,
		Icon:        "fa-sliders",
		Color:       "#2dd4bf",
		Description: "The receiver chain, image processing, and display.",
		SubTopics: []SubTopic{
			{ID: "inst-receiver", Title: "Receiver Functions", Description: "Amplification, compensation, compression, demodulation, rejection.", VisualID: "receiver_lab"},
			{ID: "inst-display", Title: "Display & Storage", Description: "Scan conversion and post-processing.", VisualID: "display_lab"},
		},
	},
	TopicAdvancedTech: {
		ID:          TopicAdvancedTech,
		Icon:        "fa-microchip",
		Color:       "#e879f9",
		Description: "Elastography, contrast agents, and 3D/4D imaging.",
		SubTopics: []SubTopic{
			{ID: "adv-elasto", Title: "Elastography", Description: "Strain and shear-wave stiffness imaging.", VisualID: "elasto_lab"},
			{ID: "adv-contrast", Title: "Contrast Agents", Description: "Microbubbles and harmonic response.", VisualID: "contrast_lab"},
		},
	},
	TopicFullMock: {
		ID:          TopicFullMock,
		Icon:        "fa-stopwatch",
		Color:       "#ef4444",
		Description: "Full-length 110-question SPI mock examination.",
		SubTopics:   []SubTopic{},
	},
}

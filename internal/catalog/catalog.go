// Package catalog holds the static SPI curriculum metadata and the
// content-override layer applied on top of it at read time. The static
// catalog itself is never mutated; operator edits live as sparse patches
// in the persistent store and win field-by-field when a topic is resolved.
package catalog

// Topic identifies one curriculum module.
type Topic string

const (
	TopicFundamentals    Topic = "Fundamentals"
	TopicTransducers     Topic = "Transducers"
	TopicPulsedWave      Topic = "Pulsed Wave"
	TopicDoppler         Topic = "Doppler"
	TopicArtifacts       Topic = "Artifacts"
	TopicBioeffects      Topic = "Bioeffects"
	TopicHemodynamics    Topic = "Hemodynamics"
	TopicQA              Topic = "QA"
	TopicResolution      Topic = "Resolution"
	TopicHarmonics       Topic = "Harmonics"
	TopicInstrumentation Topic = "Instrumentation"
	TopicAdvancedTech    Topic = "Advanced Tech"

	// TopicFullMock is the 110-question full mock exam. It has no
	// sub-units of its own; questions are drawn across all domains.
	TopicFullMock Topic = "FULL_MOCK"
)

// Domain is one of the five official SPI exam content domains.
// Quiz questions are bucketed by domain to compute weakness breakdowns;
// labels outside this set are dropped from aggregate stats.
type Domain string

const (
	DomainSafety          Domain = "Clinical Safety"
	DomainPhysics         Domain = "Physical Principles"
	DomainTransducers     Domain = "Transducers"
	DomainInstrumentation Domain = "Instrumentation"
	DomainDoppler         Domain = "Doppler & Hemodynamics"
)

// Domains returns the five official domains in display order.
func Domains() []Domain {
	return []Domain{
		DomainSafety,
		DomainPhysics,
		DomainTransducers,
		DomainInstrumentation,
		DomainDoppler,
	}
}

// SubTopic is one sub-unit of a curriculum module.
type SubTopic struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	VisualID    string   `json:"visualId"`
	Keywords    []string `json:"keywords,omitempty"`
}

// TopicMetadata describes one curriculum module as presented to the learner.
type TopicMetadata struct {
	ID          Topic      `json:"id"`
	Icon        string     `json:"icon"`
	Color       string     `json:"color"`
	Description string     `json:"description"`
	SubTopics   []SubTopic `json:"subTopics"`
}

// HasSubTopic reports whether the metadata names the given sub-unit.
func (m TopicMetadata) HasSubTopic(subID string) bool {
	for _, st := range m.SubTopics {
		if st.ID == subID {
			return true
		}
	}
	return false
}

// Get returns the static metadata for a topic, without overrides applied.
func Get(id Topic) (TopicMetadata, bool) {
	m, ok := staticCatalog[id]
	return m, ok
}

// Topics returns every topic in the static catalog, curriculum order first,
// with the full mock last.
func Topics() []Topic {
	return []Topic{
		TopicFundamentals, TopicTransducers, TopicPulsedWave, TopicDoppler,
		TopicArtifacts, TopicBioeffects, TopicHemodynamics, TopicQA,
		TopicResolution, TopicHarmonics, TopicInstrumentation,
		TopicAdvancedTech, TopicFullMock,
	}
}

package catalog

// Override is a sparse patch over one topic's static metadata. Nil fields
// are absent from the patch; present fields win wholesale at resolve time,
// including SubTopics, which is replaced as a unit rather than merged
// element-by-element.
type Override struct {
	Icon        *string    `json:"icon,omitempty"`
	Color       *string    `json:"color,omitempty"`
	Description *string    `json:"description,omitempty"`
	SubTopics   []SubTopic `json:"subTopics,omitempty"`
}

// IsZero reports whether the patch carries no fields.
func (o Override) IsZero() bool {
	return o.Icon == nil && o.Color == nil && o.Description == nil && o.SubTopics == nil
}

// ApplyTo returns meta with the patch's present fields substituted.
func (o Override) ApplyTo(meta TopicMetadata) TopicMetadata {
	if o.Icon != nil {
		meta.Icon = *o.Icon
	}
	if o.Color != nil {
		meta.Color = *o.Color
	}
	if o.Description != nil {
		meta.Description = *o.Description
	}
	if o.SubTopics != nil {
		meta.SubTopics = o.SubTopics
	}
	return meta
}

// OverrideSource supplies stored overrides. The persistent store implements
// it; absence is reported as (Override{}, false) and resolution proceeds
// with the static metadata alone.
type OverrideSource interface {
	ContentOverride(id Topic) (Override, bool)
}

// Resolver resolves a topic's effective metadata: the static catalog entry
// with the stored override, if any, merged on top.
type Resolver struct {
	source OverrideSource
}

// NewResolver creates a Resolver backed by the given override source.
// A nil source resolves static metadata only.
func NewResolver(source OverrideSource) *Resolver {
	return &Resolver{source: source}
}

// Resolve returns the effective metadata for a topic. The second return is
// false when the topic is not in the static catalog.
func (r *Resolver) Resolve(id Topic) (TopicMetadata, bool) {
	meta, ok := Get(id)
	if !ok {
		return TopicMetadata{}, false
	}
	if r == nil || r.source == nil {
		return meta, true
	}
	if ov, found := r.source.ContentOverride(id); found {
		meta = ov.ApplyTo(meta)
	}
	return meta, true
}

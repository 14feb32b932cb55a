package mdr

// AttrKey identifies one attribute in a run's attribute set. The set of keys
// is closed; every value type has a defined cheap copy, so snapshotting an
// attribute set never needs reflection.
type AttrKey uint8

const (
	// AttrFont holds a Font.
	AttrFont AttrKey = iota
	// AttrForeground holds a Color.
	AttrForeground
	// AttrBackground holds a Color.
	AttrBackground
	// AttrUnderline holds a LineStyle.
	AttrUnderline
	// AttrStrike holds a LineStyle.
	AttrStrike
	// AttrIndent holds an Indent.
	AttrIndent
	// AttrLink holds the destination URL as a string.
	AttrLink
	// AttrMetadata holds a MetadataSet. It merges structurally instead of
	// overwriting.
	AttrMetadata
)

// Attributes is an unordered attribute set. Values are restricted to the
// closed kinds documented on the AttrKey constants.
type Attributes map[AttrKey]any

// Clone returns a deep copy. Scalar values copy by assignment; the metadata
// set is the only container kind and is copied entry by entry, so mutating a
// clone never leaks into a previously captured snapshot.
func (a Attributes) Clone() Attributes {
	out := make(Attributes, len(a))
	for k, v := range a {
		if k == AttrMetadata {
			if set, ok := v.(MetadataSet); ok {
				out[k] = set.Clone()
				continue
			}
		}
		out[k] = v
	}
	return out
}

// Font returns the font attribute if set.
func (a Attributes) Font() (Font, bool) {
	f, ok := a[AttrFont].(Font)
	return f, ok
}

// Link returns the link destination if set.
func (a Attributes) Link() (string, bool) {
	u, ok := a[AttrLink].(string)
	return u, ok
}

// Metadata returns the element metadata set if present.
func (a Attributes) Metadata() (MetadataSet, bool) {
	set, ok := a[AttrMetadata].(MetadataSet)
	return set, ok
}

// Merge combines two attribute sets into a new one. Incoming values
// overwrite existing ones for every key except AttrMetadata, whose sets
// union variant-by-construct with incoming entries winning ties. Neither
// input is modified.
func Merge(existing, incoming Attributes) Attributes {
	out := existing.Clone()
	for k, v := range incoming {
		if k == AttrMetadata {
			inc, ok := v.(MetadataSet)
			if !ok {
				continue
			}
			if cur, ok := out.Metadata(); ok {
				out[k] = cur.Merge(inc)
			} else {
				out[k] = inc.Clone()
			}
			continue
		}
		out[k] = v
	}
	return out
}

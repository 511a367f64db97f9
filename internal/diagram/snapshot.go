package diagram

// Snapshot is the value copy of the live editor graph handed over by the
// editor. The extractor never sees the live graph itself.
type Snapshot struct {
	Title   string          `json:"title,omitempty"`
	Classes []SnapshotClass `json:"classes"`
	Links   []SnapshotLink  `json:"links"`
}

// SnapshotClass is one graphical element. Only elements whose Type names a
// UML class, interface or abstract class become classes.
type SnapshotClass struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Stereotype string   `json:"stereotype,omitempty"`
	Attributes []string `json:"attributes"`
	Methods    []string `json:"methods"`
	Position   *Point   `json:"position,omitempty"`
}

// SnapshotLink is one graphical link between two elements.
type SnapshotLink struct {
	ID                 string `json:"id,omitempty"`
	SourceID           string `json:"sourceId"`
	TargetID           string `json:"targetId"`
	Kind               string `json:"kind"`
	SourceMultiplicity string `json:"sourceMultiplicity,omitempty"`
	TargetMultiplicity string `json:"targetMultiplicity,omitempty"`
	Label              string `json:"label,omitempty"`
}

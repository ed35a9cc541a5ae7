package scene

// Kind identifies one of the four primitive types a scene file can describe.
// The set is closed: the shader's uniform layout has one array per kind.
type Kind int

const (
	Triangle Kind = iota
	Sphere
	Plane
	Light

	// KindCount is the number of primitive kinds.
	KindCount
)

// Kinds lists every primitive kind in packing order.
var Kinds = [KindCount]Kind{Triangle, Sphere, Plane, Light}

type kindInfo struct {
	name   string
	marker byte
	fields []string
}

// fields are the data lines following a marker, in file order.
var kindTable = [KindCount]kindInfo{
	Triangle: {name: "triangle", marker: 't', fields: []string{"p0", "p1", "p2", "color", "material"}},
	Sphere:   {name: "sphere", marker: 's', fields: []string{"center", "radius", "color", "material"}},
	Plane:    {name: "plane", marker: 'p', fields: []string{"normal", "point", "color", "material"}},
	Light:    {name: "light", marker: 'l', fields: []string{"pos", "color"}},
}

func (k Kind) valid() bool {
	return k >= 0 && k < KindCount
}

func (k Kind) String() string {
	if !k.valid() {
		return "unknown"
	}
	return kindTable[k].name
}

// Marker is the first character of the line that starts a record of this kind.
func (k Kind) Marker() byte {
	return kindTable[k].marker
}

// Width is the number of vectors (data lines) in one record.
func (k Kind) Width() int {
	return len(kindTable[k].fields)
}

// Field names the i-th vector of a record.
func (k Kind) Field(i int) string {
	fields := kindTable[k].fields
	if i < 0 || i >= len(fields) {
		return "?"
	}
	return fields[i]
}

// KindForMarker maps a marker character to its kind.
func KindForMarker(c byte) (Kind, bool) {
	for _, k := range Kinds {
		if kindTable[k].marker == c {
			return k, true
		}
	}
	return 0, false
}

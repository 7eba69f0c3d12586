package polyomino

// Kind identifies one of the fixed shape variants.
type Kind byte

const (
	Q Kind = 'Q'
	I Kind = 'I'
	T Kind = 'T'
	S Kind = 'S'
	Z Kind = 'Z'
	L Kind = 'L'
	J Kind = 'J'
)

// Kinds lists every variant in registration order.
var Kinds = []Kind{Q, I, T, S, Z, L, J}

func (k Kind) String() string {
	return string(rune(k))
}

// Offset is a (row, column) displacement relative to an anchor cell.
type Offset struct {
	Row, Col int
}

// geometry describes a variant as data: where its body cells sit relative
// to the anchor, which of them form the lower contour probed for
// collisions, and whether the anchor is lifted when it lands on the floor.
type geometry struct {
	body        [4]Offset
	legs        []Offset
	liftAtFloor bool
	width       int
}

//	Q    I       T      S      Z      L     J
//	##   ####    ###    .##    ##.    #.    .#
//	##           .#.    ##.    .##    #.    .#
//	                                  ##    ##
var geometries = map[Kind]geometry{
	Q: {
		body:  [4]Offset{{0, 0}, {-1, 0}, {-1, 1}, {0, 1}},
		legs:  []Offset{{0, 0}, {0, 1}},
		width: 2,
	},
	I: {
		body:  [4]Offset{{0, 0}, {0, 1}, {0, 2}, {0, 3}},
		legs:  []Offset{{0, 0}, {0, 1}, {0, 2}, {0, 3}},
		width: 4,
	},
	// The anchor is the left end of the top bar. On the floor row the whole
	// body is lifted so the stem stays inside the grid.
	T: {
		body:        [4]Offset{{0, 0}, {0, 1}, {0, 2}, {1, 1}},
		legs:        []Offset{{0, 0}, {1, 1}, {0, 2}},
		liftAtFloor: true,
		width:       3,
	},
	S: {
		body:  [4]Offset{{0, 0}, {0, 1}, {-1, 1}, {-1, 2}},
		legs:  []Offset{{0, 0}, {0, 1}, {-1, 2}},
		width: 3,
	},
	// The anchor itself is not part of the body.
	Z: {
		body:  [4]Offset{{-1, 0}, {-1, 1}, {0, 1}, {0, 2}},
		legs:  []Offset{{-1, 0}, {0, 1}, {0, 2}},
		width: 3,
	},
	L: {
		body:  [4]Offset{{0, 0}, {-1, 0}, {-2, 0}, {0, 1}},
		legs:  []Offset{{0, 0}, {0, 1}},
		width: 2,
	},
	J: {
		body:  [4]Offset{{0, 0}, {0, 1}, {-1, 1}, {-2, 1}},
		legs:  []Offset{{0, 0}, {0, 1}},
		width: 2,
	},
}

// Offsets returns the body offsets of a kind relative to its anchor.
func (k Kind) Offsets() []Offset {
	g := k.geometry()
	return g.body[:]
}

// Legs returns the lower-contour offsets of a kind.
func (k Kind) Legs() []Offset {
	return k.geometry().legs
}

// Width returns the number of columns a kind spans.
func (k Kind) Width() int {
	return k.geometry().width
}

// Valid reports whether the kind has a geometry.
func (k Kind) Valid() bool {
	_, ok := geometries[k]
	return ok
}

func (k Kind) geometry() geometry {
	g, ok := geometries[k]
	if !ok {
		panic("polyomino: unknown kind " + k.String())
	}
	return g
}

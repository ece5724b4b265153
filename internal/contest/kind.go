package contest

// Kind enumerates the closed set of contest types.
// The order is the campaign order; encounter n plays Kind(n).
type Kind int

const (
	KindUnknown Kind = iota
	KindFlapping
	KindStirring
	KindJumprope
	KindParachute
	KindUmbrella
	KindSwearing
	KindDodging
	KindBalancing
	KindRollerskates
	KindTraffic
	KindLevitation
)

var kindIDs = map[Kind]string{
	KindFlapping:     "flapping",
	KindStirring:     "stirring",
	KindJumprope:     "jumprope",
	KindParachute:    "parachute",
	KindUmbrella:     "umbrella",
	KindSwearing:     "swearing",
	KindDodging:      "dodging",
	KindBalancing:    "balancing",
	KindRollerskates: "rollerskates",
	KindTraffic:      "traffic",
	KindLevitation:   "levitation",
}

// String returns the identifier used on the command line and in storage.
func (k Kind) String() string {
	if id, ok := kindIDs[k]; ok {
		return id
	}
	return "unknown"
}

// Valid reports whether k names a contest type.
func (k Kind) Valid() bool {
	_, ok := kindIDs[k]
	return ok
}

// ParseKind looks up a kind by identifier.
func ParseKind(id string) (Kind, bool) {
	for k, s := range kindIDs {
		if s == id {
			return k, true
		}
	}
	return KindUnknown, false
}

// Kinds returns every kind in campaign order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindIDs))
	for k := KindFlapping; k <= KindLevitation; k++ {
		out = append(out, k)
	}
	return out
}

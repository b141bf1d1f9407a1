package ganzhi

import "fmt"

// Element is one of the five phases (五行).
type Element int

const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

// Elements lists the five phases in generative order.
var Elements = [5]Element{Wood, Fire, Earth, Metal, Water}

var (
	elementNames  = [5]string{"wood", "fire", "earth", "metal", "water"}
	elementKorean = [5]string{"목", "화", "토", "금", "수"}
	elementHanja  = [5]string{"木", "火", "土", "金", "水"}
)

func (e Element) Valid() bool { return e >= Wood && e <= Water }

func (e Element) String() string {
	if !e.Valid() {
		return fmt.Sprintf("Element(%d)", int(e))
	}
	return elementNames[e]
}

// Korean returns the hangul reading, e.g. "목".
func (e Element) Korean() string {
	if !e.Valid() {
		return ""
	}
	return elementKorean[e]
}

// Hanja returns the CJK symbol, e.g. "木".
func (e Element) Hanja() string {
	if !e.Valid() {
		return ""
	}
	return elementHanja[e]
}

// Generates returns the element this one feeds (wood→fire→earth→metal→water→wood).
func (e Element) Generates() Element { return Element(Mod(int(e)+1, 5)) }

// GeneratedBy returns the element that feeds this one.
func (e Element) GeneratedBy() Element { return Element(Mod(int(e)+4, 5)) }

// Destroys returns the element this one overcomes (wood→earth→water→fire→metal→wood).
func (e Element) Destroys() Element { return Element(Mod(int(e)+2, 5)) }

// DestroyedBy returns the element that overcomes this one.
func (e Element) DestroyedBy() Element { return Element(Mod(int(e)+3, 5)) }

func (e Element) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("invalid element %d", int(e))
	}
	return []byte(elementNames[e]), nil
}

func (e *Element) UnmarshalText(b []byte) error {
	v, err := ParseElement(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// ParseElement accepts the English name, the hangul reading or the hanja symbol.
func ParseElement(s string) (Element, error) {
	for i := range elementNames {
		if s == elementNames[i] || s == elementKorean[i] || s == elementHanja[i] {
			return Element(i), nil
		}
	}
	return 0, fmt.Errorf("unknown element %q", s)
}

// Relation classifies how element `other` stands toward the reference element `self`.
type Relation int

const (
	RelSame        Relation = iota // same element
	RelResource                    // other generates self
	RelOutput                      // self generates other
	RelWealth                      // self destroys other
	RelAuthority                   // other destroys self
)

var relationNames = [...]string{"same", "resource", "output", "wealth", "authority"}

func (r Relation) String() string {
	if r < RelSame || r > RelAuthority {
		return fmt.Sprintf("Relation(%d)", int(r))
	}
	return relationNames[r]
}

// Relate returns the relation of other as seen from self.
func Relate(self, other Element) Relation {
	switch other {
	case self:
		return RelSame
	case self.GeneratedBy():
		return RelResource
	case self.Generates():
		return RelOutput
	case self.Destroys():
		return RelWealth
	default:
		return RelAuthority
	}
}

// Mod is a floor modulo: the result always lies in [0, n).
func Mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

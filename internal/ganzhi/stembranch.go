package ganzhi

import (
	"fmt"
	"unicode/utf8"
)

// Stem is one of the ten heavenly stems (天干), indexed 0..9 from 甲.
type Stem int

// Branch is one of the twelve earthly branches (地支), indexed 0..11 from 子.
type Branch int

const (
	StemCount   = 10
	BranchCount = 12
)

var (
	stemSymbols = [StemCount]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}
	stemKorean  = [StemCount]string{"갑", "을", "병", "정", "무", "기", "경", "신", "임", "계"}

	branchSymbols  = [BranchCount]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}
	branchKorean   = [BranchCount]string{"자", "축", "인", "묘", "진", "사", "오", "미", "신", "유", "술", "해"}
	branchAnimals  = [BranchCount]string{"rat", "ox", "tiger", "rabbit", "dragon", "snake", "horse", "goat", "monkey", "rooster", "dog", "pig"}
	branchElements = [BranchCount]Element{Water, Earth, Wood, Wood, Earth, Fire, Fire, Earth, Metal, Metal, Earth, Water}
)

func (s Stem) Valid() bool { return s >= 0 && s < StemCount }

func (s Stem) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Stem(%d)", int(s))
	}
	return stemSymbols[s]
}

func (s Stem) Korean() string {
	if !s.Valid() {
		return ""
	}
	return stemKorean[s]
}

// Element pairs stems two by two: 甲乙 wood, 丙丁 fire, 戊己 earth, 庚辛 metal, 壬癸 water.
func (s Stem) Element() Element { return Element(int(s) / 2) }

// Yang reports the polarity; even-indexed stems are yang.
func (s Stem) Yang() bool { return s%2 == 0 }

// Step walks the 10-stem cycle by n (negative walks backward).
func (s Stem) Step(n int) Stem { return Stem(Mod(int(s)+n, StemCount)) }

func (s Stem) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid stem %d", int(s))
	}
	return []byte(stemSymbols[s]), nil
}

func (s *Stem) UnmarshalText(b []byte) error {
	v, err := ParseStem(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseStem accepts a hanja symbol ("甲") or its hangul reading ("갑").
func ParseStem(sym string) (Stem, error) {
	for i := range stemSymbols {
		if sym == stemSymbols[i] || sym == stemKorean[i] {
			return Stem(i), nil
		}
	}
	return 0, fmt.Errorf("unknown stem %q", sym)
}

func (b Branch) Valid() bool { return b >= 0 && b < BranchCount }

func (b Branch) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Branch(%d)", int(b))
	}
	return branchSymbols[b]
}

func (b Branch) Korean() string {
	if !b.Valid() {
		return ""
	}
	return branchKorean[b]
}

// Animal returns the zodiac animal name.
func (b Branch) Animal() string {
	if !b.Valid() {
		return ""
	}
	return branchAnimals[b]
}

func (b Branch) Element() Element { return branchElements[b] }

// Step walks the 12-branch cycle by n (negative walks backward).
func (b Branch) Step(n int) Branch { return Branch(Mod(int(b)+n, BranchCount)) }

func (b Branch) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("invalid branch %d", int(b))
	}
	return []byte(branchSymbols[b]), nil
}

func (b *Branch) UnmarshalText(text []byte) error {
	v, err := ParseBranch(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// ParseBranch accepts a hanja symbol ("子") or its hangul reading ("자").
// The reading 신 is ambiguous with the stem 辛 but unique among branches.
func ParseBranch(sym string) (Branch, error) {
	for i := range branchSymbols {
		if sym == branchSymbols[i] || sym == branchKorean[i] {
			return Branch(i), nil
		}
	}
	return 0, fmt.Errorf("unknown branch %q", sym)
}

// Pillar is one stem-branch pair (柱). It encodes as text, e.g. "甲子".
type Pillar struct {
	Stem   Stem
	Branch Branch
}

// String renders the pair as two CJK characters, e.g. "甲子".
func (p Pillar) String() string { return p.Stem.String() + p.Branch.String() }

// Korean renders the hangul reading, e.g. "갑자".
func (p Pillar) Korean() string { return p.Stem.Korean() + p.Branch.Korean() }

// ParsePillar splits a two-character ganzhi string such as "甲子".
func ParsePillar(s string) (Pillar, error) {
	if utf8.RuneCountInString(s) != 2 {
		return Pillar{}, fmt.Errorf("pillar %q: want 2 characters", s)
	}
	r, size := utf8.DecodeRuneInString(s)
	stem, err := ParseStem(string(r))
	if err != nil {
		return Pillar{}, fmt.Errorf("pillar %q: %w", s, err)
	}
	branch, err := ParseBranch(s[size:])
	if err != nil {
		return Pillar{}, fmt.Errorf("pillar %q: %w", s, err)
	}
	return Pillar{Stem: stem, Branch: branch}, nil
}

func (p Pillar) MarshalText() ([]byte, error) {
	if !p.Stem.Valid() || !p.Branch.Valid() {
		return nil, fmt.Errorf("invalid pillar (%d, %d)", int(p.Stem), int(p.Branch))
	}
	return []byte(p.String()), nil
}

func (p *Pillar) UnmarshalText(b []byte) error {
	v, err := ParsePillar(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

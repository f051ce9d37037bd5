package hue

import (
	"fmt"
	"strings"
)

type Kind uint8

const (
	KindLight = Kind(0)
	KindGroup = Kind(1)
)

var (
	AllKinds = Kinds{
		KindLight,
		KindGroup,
	}
)

func (this *Kind) Set(plain string) error {
	switch strings.TrimSpace(strings.ToLower(plain)) {
	case "light":
		*this = KindLight
		return nil
	case "group", "room":
		*this = KindGroup
		return nil
	default:
		return fmt.Errorf("illegal-hue-kind: %s", plain)
	}
}

func (this Kind) String() string {
	switch this {
	case KindLight:
		return "light"
	case KindGroup:
		return "group"
	default:
		return fmt.Sprintf("illegal-hue-kind-%d", this)
	}
}

func (this Kind) MarshalText() (text []byte, err error) {
	return []byte(this.String()), nil
}

func (this *Kind) UnmarshalText(text []byte) error {
	return this.Set(string(text))
}

type Kinds []Kind

func (this Kinds) Has(candidate Kind) bool {
	for _, v := range this {
		if v == candidate {
			return true
		}
	}
	return false
}

func (this *Kinds) Set(plain string) error {
	var result Kinds
	for _, part := range strings.Split(plain, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		var buf Kind
		if err := buf.Set(part); err != nil {
			return err
		}
		result = append(result, buf)
	}
	*this = result
	return nil
}

func (this Kinds) Strings() []string {
	result := make([]string, len(this))
	for i, v := range this {
		result[i] = v.String()
	}
	return result
}

func (this Kinds) String() string {
	return strings.Join(this.Strings(), ",")
}

func (this Kinds) MarshalText() (text []byte, err error) {
	return []byte(this.String()), nil
}

func (this *Kinds) UnmarshalText(text []byte) error {
	return this.Set(string(text))
}

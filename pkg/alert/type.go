package alert

import (
	"fmt"
	"strings"
)

type Type uint8

const (
	TypeSpeech        = Type(0)
	TypeSystray       = Type(1)
	TypeHue           = Type(2)
	TypeHomeAssistant = Type(3)
)

var (
	AllTypes = Types{
		TypeSpeech,
		TypeSystray,
		TypeHue,
		TypeHomeAssistant,
	}
)

func (this *Type) Set(plain string) error {
	switch strings.TrimSpace(strings.ToLower(plain)) {
	case "speech":
		*this = TypeSpeech
		return nil
	case "systray", "tray":
		*this = TypeSystray
		return nil
	case "hue":
		*this = TypeHue
		return nil
	case "homeassistant", "home-assistant":
		*this = TypeHomeAssistant
		return nil
	default:
		return fmt.Errorf("illegal-alert-type: %s", plain)
	}
}

func (this Type) String() string {
	v, err := this.MarshalText()
	if err != nil {
		return fmt.Sprintf("illegal-alert-type-%d", this)
	}
	return string(v)
}

func (this Type) MarshalText() (text []byte, err error) {
	switch this {
	case TypeSpeech:
		return []byte("speech"), nil
	case TypeSystray:
		return []byte("systray"), nil
	case TypeHue:
		return []byte("hue"), nil
	case TypeHomeAssistant:
		return []byte("homeAssistant"), nil
	default:
		return nil, fmt.Errorf("illegal alert type: %d", this)
	}
}

func (this *Type) UnmarshalText(text []byte) error {
	return this.Set(string(text))
}

type Types []Type

// Set parses a comma separated list of alert types, replacing the
// current content.
func (this *Types) Set(plain string) error {
	var result Types
	for _, part := range strings.Split(plain, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		var buf Type
		if err := buf.Set(part); err != nil {
			return err
		}
		result = append(result, buf)
	}
	*this = result
	return nil
}

func (this Types) Has(candidate Type) bool {
	for _, v := range this {
		if v == candidate {
			return true
		}
	}
	return false
}

func (this Types) Strings() []string {
	result := make([]string, len(this))
	for i, v := range this {
		result[i] = v.String()
	}
	return result
}

func (this Types) String() string {
	return strings.Join(this.Strings(), ",")
}

func (this Types) MarshalText() (text []byte, err error) {
	return []byte(this.String()), nil
}

func (this *Types) UnmarshalText(text []byte) error {
	return this.Set(string(text))
}

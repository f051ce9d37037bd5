package homeassistant

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/sentrylabs/wifi-sentry/pkg/common"
)

const DefaultServer = "http://homeassistant.local:8123/"

func NewConfiguration() Configuration {
	return Configuration{
		"",
		"",
		fmt.Sprintf("sensor.wifi_sentry_%s", hostId),
	}
}

var forbiddenHostIdChars = regexp.MustCompile("[^a-z0-9_]")

func normalizeEntityIdPart(id string) string {
	id = strings.ToLower(id)
	id = strings.TrimSpace(id)
	id = strings.ReplaceAll(id, "-", "_")
	id = strings.ReplaceAll(id, ".", "_")
	id = forbiddenHostIdChars.ReplaceAllString(id, "_")
	return id
}

var hostId = func() string {
	if result, err := os.Hostname(); err == nil {
		return normalizeEntityIdPart(result)
	}

	buf := make([]byte, 8)
	if _, err := rand.Reader.Read(buf); err != nil {
		panic(fmt.Errorf("cannot generate entity id: %v", err))
	}

	return hex.EncodeToString(buf)
}()

type Configuration struct {
	Server   string `yaml:"server,omitempty"`
	Token    string `yaml:"token,omitempty"`
	EntityId string `yaml:"entityId"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("homeassistant.server", "URL of the Home Assistant instance.").
		Envar("WS_HOMEASSISTANT_SERVER").
		StringVar(&this.Server)
	using.Flag("homeassistant.token", "Long life token to access the Home Assistant instance.").
		Envar("WS_HOMEASSISTANT_TOKEN").
		StringVar(&this.Token)
	using.Flag("homeassistant.entityId", "Entity ID to publish visitor events to.").
		Envar("WS_HOMEASSISTANT_ENTITY_ID").
		StringVar(&this.EntityId)
}

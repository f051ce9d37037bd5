package homeassistant

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/sentrylabs/wifi-sentry/pkg/alert"
	"github.com/sentrylabs/wifi-sentry/pkg/common"
	"github.com/sentrylabs/wifi-sentry/pkg/credentials"
)

// Homeassistant publishes every event as the state of one sensor entity,
// so automations can react to visitors without listening to audio.
type Homeassistant struct {
	conf         *Configuration
	saveConfFunc func() error
	creds        credentials.Credentials
	mutex        sync.Mutex

	client http.Client
}

func (this *Homeassistant) Initialize(conf *Configuration, saveConfFunc func() error) error {
	this.conf = conf
	this.saveConfFunc = saveConfFunc

	v, err := this.resolveCredentials()
	if err != nil {
		return err
	}
	this.creds = v

	return this.Update()
}

// Update verifies the instance is reachable with the resolved credentials.
func (this *Homeassistant) Update() error {
	rsp, err := this.do("GET", "/api/", nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = rsp.Body.Close()
	}()
	if rsp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d - %s", rsp.StatusCode, rsp.Status)
	}
	return nil
}

func (this *Homeassistant) Notify(event alert.Event) error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	body, err := json.Marshal(newStatePostRequest(event))
	if err != nil {
		return err
	}

	rsp, err := this.do("POST", "/api/states/"+this.conf.EntityId, body)
	if err != nil {
		return err
	}
	defer func() {
		_ = rsp.Body.Close()
	}()
	if rsp.StatusCode != http.StatusOK && rsp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status code: %d - %s", rsp.StatusCode, rsp.Status)
	}

	return nil
}

func (this *Homeassistant) do(method, path string, body []byte) (*http.Response, error) {
	server := this.creds.HomeAssistantServer
	if server == "" {
		server = DefaultServer
	}

	url := strings.TrimSuffix(server, "/") + path
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("cannot create request %s %s: %w", method, url, err)
	}
	req.Header.Set("Authorization", "Bearer "+this.creds.HomeAssistantToken)
	req.Header.Set("Content-Type", "application/json")

	rsp, err := this.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot call %s %s: %w", method, url, err)
	}
	return rsp, nil
}

func (this *Homeassistant) resolveCredentials() (credentials.Credentials, error) {
	var v credentials.Credentials
	if _, err := v.ReadFromStore(); err != nil {
		return credentials.Credentials{}, err
	}

	if v.HomeAssistantServer == "" {
		v.HomeAssistantServer = this.conf.Server
	}
	if v.HomeAssistantToken == "" {
		v.HomeAssistantToken = this.conf.Token
	}

	changed := false
	if v.HomeAssistantServer == "" {
		v.HomeAssistantServer = DefaultServer
	}
	if v.HomeAssistantToken == "" {
		if err := common.RequestStringContentIfRequiredFromTerminal(&v.HomeAssistantToken, "Home Assistant token", false, true); err != nil {
			return credentials.Credentials{}, err
		}
		changed = true
	}

	if changed {
		if err := this.storeCredentials(v); err != nil {
			return credentials.Credentials{}, err
		}
	}

	return v, nil
}

func (this *Homeassistant) storeCredentials(cred credentials.Credentials) error {
	supported, err := cred.WriteToStore()
	if err != nil {
		return err
	}
	if supported {
		return nil
	}

	this.conf.Server = cred.HomeAssistantServer
	this.conf.Token = cred.HomeAssistantToken
	return this.saveConfFunc()
}

func (this *Homeassistant) Dispose() error {
	this.conf = nil
	this.saveConfFunc = nil
	return nil
}

func (this *Homeassistant) GetType() alert.Type {
	return alert.TypeHomeAssistant
}
